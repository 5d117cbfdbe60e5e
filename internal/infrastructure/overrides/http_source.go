package overrides

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// httpSource implements port.OverrideSource over a remote JSON document,
// letting deployment addresses be updated independently of the binary's
// built-in catalog. The document is fetched via Load/Refresh; lookups are
// served from the last successfully fetched table.
type httpSource struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.RWMutex
	table map[uint64]map[entity.ContractRole]string
}

// NewHTTPSource creates an override source backed by a remote JSON document.
// Call Load before first use; until then every lookup misses.
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *httpSource {
	return &httpSource{
		client:  &fasthttp.Client{},
		url:     strings.TrimSpace(url),
		timeout: timeout,
		logger:  logger.Named("OverrideSource"),
		table:   map[uint64]map[entity.ContractRole]string{},
	}
}

var _ port.OverrideSource = (*httpSource)(nil)

// Load fetches the override document and replaces the in-memory table. On
// failure the previous table stays in place.
func (s *httpSource) Load() error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	s.logger.Debug("Fetching deployment overrides", zap.String("url", s.url))

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		return fmt.Errorf("failed to fetch overrides from %s: %w", s.url, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("unexpected status %d fetching overrides from %s", resp.StatusCode(), s.url)
	}

	var doc overrideDocument
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return fmt.Errorf("failed to parse overrides document from %s: %w", s.url, err)
	}

	table := documentToTable(doc)

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.Info("Deployment overrides loaded", zap.Int("chainCount", len(table)))
	return nil
}

// GetAddressForRole returns the override address for (chain id, role), if any.
func (s *httpSource) GetAddressForRole(chainID uint64, role entity.ContractRole) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contracts, ok := s.table[chainID]
	if !ok {
		return "", false
	}
	addr, ok := contracts[role]
	if !ok || addr == "" {
		return "", false
	}
	return addr, true
}
