package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"chain_router/internal/app/port"
	"chain_router/internal/config"
	"chain_router/internal/domain/entity"
	"chain_router/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// APIError is the uniform error payload.
type APIError struct {
	Error string `json:"error"`
}

// GasPriceView is the wire shape of a reading, with prices rendered as
// decimal gwei strings on top of the raw wei values.
type GasPriceView struct {
	entity.GasPriceReading
	GasPriceGwei             string `json:"gasPriceGwei,omitempty"`
	MaxFeePerGasGwei         string `json:"maxFeePerGasGwei,omitempty"`
	MaxPriorityFeePerGasGwei string `json:"maxPriorityFeePerGasGwei,omitempty"`
}

func newGasPriceView(r entity.GasPriceReading) GasPriceView {
	view := GasPriceView{GasPriceReading: r}
	if r.GasPrice != nil {
		view.GasPriceGwei = utils.FormatWeiAsGwei(r.GasPrice)
	}
	if r.MaxFeePerGas != nil {
		view.MaxFeePerGasGwei = utils.FormatWeiAsGwei(r.MaxFeePerGas)
	}
	if r.MaxPriorityFeePerGas != nil {
		view.MaxPriorityFeePerGasGwei = utils.FormatWeiAsGwei(r.MaxPriorityFeePerGas)
	}
	return view
}

// ChainHandler serves registry, gas, selection and routing endpoints.
type ChainHandler struct {
	registry port.ChainRegistry
	oracle   port.GasOracle
	selector port.ChainSelector
	router   port.ChainRouter
	defaults config.SelectorConfig
}

// NewChainHandler creates the handler over the application services.
func NewChainHandler(
	registry port.ChainRegistry,
	oracle port.GasOracle,
	selector port.ChainSelector,
	router port.ChainRouter,
	defaults config.SelectorConfig,
) *ChainHandler {
	return &ChainHandler{
		registry: registry,
		oracle:   oracle,
		selector: selector,
		router:   router,
		defaults: defaults,
	}
}

// ListChainsHandler returns all registered chain descriptors. With
// ?layer2=true only the layer-2 subset is returned.
func (h *ChainHandler) ListChainsHandler(c *gin.Context) {
	if layer2, _ := strconv.ParseBool(c.Query("layer2")); layer2 {
		c.JSON(http.StatusOK, gin.H{"chains": h.registry.Layer2Chains()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chains": h.registry.All()})
}

// GetChainHandler returns one descriptor by symbolic name.
func (h *ChainHandler) GetChainHandler(c *gin.Context) {
	desc, err := h.registry.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, desc)
}

// GetChainFeatureHandler reports one capability flag for a chain. Unknown
// flag names resolve to false rather than an error; unknown chains are 404.
func (h *ChainHandler) GetChainFeatureHandler(c *gin.Context) {
	chainName := c.Param("name")
	flagName := c.Param("flag")

	flag, known := entity.ParseFeatureFlag(flagName)
	if !known {
		if !h.registry.IsSupported(chainName) {
			c.JSON(http.StatusNotFound, APIError{Error: entity.ErrUnknownChain.Error() + ": " + chainName})
			return
		}
		c.JSON(http.StatusOK, gin.H{"chain": chainName, "flag": flagName, "supported": false})
		return
	}

	supported, err := h.router.IsFeatureSupported(chainName, flag)
	if err != nil {
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chain": chainName, "flag": flag.String(), "supported": supported})
}

// ListGasPricesHandler returns one reading per registered chain. Failures are
// reported as failure-status entries, never as an HTTP error.
func (h *ChainHandler) ListGasPricesHandler(c *gin.Context) {
	readings := h.oracle.GetAllGasPrices(c.Request.Context())

	views := make([]GasPriceView, 0, len(readings))
	successes := 0
	for _, r := range readings {
		if r.Status == entity.FetchSuccess {
			successes++
		}
		views = append(views, newGasPriceView(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"gasPrices": views,
		"successes": successes,
		"total":     len(views),
	})
}

// GetGasPriceHandler returns the reading for one chain. ?cache=false forces a
// live fetch; RPC failures surface as 502 here since there is no aggregate to
// fold them into.
func (h *ChainHandler) GetGasPriceHandler(c *gin.Context) {
	useCache := true
	if raw, ok := c.GetQuery("cache"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err == nil {
			useCache = parsed
		}
	}

	reading, err := h.oracle.GetGasPrice(c.Request.Context(), c.Param("name"), useCache)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownChain) {
			c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newGasPriceView(reading))
}

// SelectChainHandler runs chain selection for the posted criteria.
func (h *ChainHandler) SelectChainHandler(c *gin.Context) {
	var criteria entity.SelectionCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid selection criteria: " + err.Error()})
		return
	}

	if h.defaults.DefaultPreferLayer2 && !criteria.PreferLayer2 {
		criteria.PreferLayer2 = true
	}
	if criteria.MaxGasPriceGwei == "" {
		criteria.MaxGasPriceGwei = h.defaults.DefaultMaxGasGwei
	}
	if criteria.MaxGasPriceGwei != "" {
		ceiling, err := utils.ParseGweiDecimal(criteria.MaxGasPriceGwei)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIError{Error: "invalid maxGasPriceGwei: " + err.Error()})
			return
		}
		criteria.MaxGasPrice = ceiling
	}

	chosen, err := h.selector.SelectOptimalChain(c.Request.Context(), criteria)
	if err != nil {
		if entity.IsNoEligibleChain(err) {
			c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chain": chosen})
}

// RouteEventHandler resolves a "<chainName>-<sequenceNumber>" identifier to a
// chain descriptor.
func (h *ChainHandler) RouteEventHandler(c *gin.Context) {
	desc, err := h.router.DetectChainByEventID(c.Param("id"))
	if err != nil {
		if errors.Is(err, entity.ErrInvalidIdentifierFormat) {
			c.JSON(http.StatusBadRequest, APIError{Error: err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chain": desc})
}

// RouteContractHandler finds the chain carrying a contract role at the given
// address.
func (h *ChainHandler) RouteContractHandler(c *gin.Context) {
	address := c.Query("address")
	role := entity.ContractRole(c.Query("role"))
	if address == "" || role == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "address and role query parameters are required"})
		return
	}

	desc, err := h.router.DetectChainByContractAddress(address, role)
	if err != nil {
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chain": desc})
}
