package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nftmarket/core"
	"nftmarket/observability"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

type Server struct {
	node    *core.Node
	logger  *slog.Logger
	limiter *rateLimiter
}

func NewServer(node *core.Node, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{node: node, logger: logger}
}

// SetRateLimit enables per-client rate limiting of the JSON-RPC endpoint.
// A limit of zero or less disables it.
func (s *Server) SetRateLimit(requestsPerMinute float64, burst int) {
	if requestsPerMinute <= 0 {
		s.limiter = nil
		return
	}
	s.limiter = newRateLimiter(requestsPerMinute, burst)
}

// Router builds the HTTP surface: the JSON-RPC endpoint plus health and
// metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if s.limiter != nil {
		r.With(s.limiter.middleware).Post("/", s.handle)
	} else {
		r.Post("/", s.handle)
	}
	return r
}

func (s *Server) Start(addr string) error {
	s.logger.Info("starting JSON-RPC server", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      interface{}       `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	errObj := &RPCError{Code: code, Message: message}
	if data != nil {
		errObj.Data = data
	}
	_ = json.NewEncoder(w).Encode(&RPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   errObj,
	})
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	_ = json.NewEncoder(w).Encode(&RPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  result,
	})
}

// writeModuleError maps a module sentinel error to its RPC code and records
// the failure.
func (s *Server) writeModuleError(w http.ResponseWriter, req *RPCRequest, err error) {
	code := errorCode(err)
	writeError(w, http.StatusOK, req.ID, code, err.Error(), nil)
}

func invalidParams(w http.ResponseWriter, req *RPCRequest, err error) {
	writeError(w, http.StatusOK, req.ID, codeInvalidParams, err.Error(), nil)
}

type handlerFunc func(w http.ResponseWriter, req *RPCRequest)

// handle is the main request handler that routes to specific handlers.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	defer func() {
		_ = reader.Close()
	}()

	w.Header().Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)

	body, err := io.ReadAll(reader)
	if err != nil {
		status := http.StatusBadRequest
		message := "failed to read request body"
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
			message = fmt.Sprintf("request body exceeds %d bytes", maxRequestBytes)
		}
		writeError(w, status, nil, codeInvalidRequest, message, err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, nil, codeInvalidRequest, "request body required", nil)
		return
	}

	req := &RPCRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload", err.Error())
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported jsonrpc version", req.JSONRPC)
		return
	}
	if req.Method == "" {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "method required", nil)
		return
	}

	handler, ok := s.methods()[req.Method]
	if !ok {
		s.logger.Warn("unknown method", "method", req.Method, "requestId", requestID)
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, fmt.Sprintf("unknown method %q", req.Method), nil)
		return
	}

	recorder := &statusRecorder{rw: w}
	start := time.Now()
	handler(recorder, req)
	observability.RPCMetrics().Observe(req.Method, recorder.errCode, time.Since(start))
}

// statusRecorder captures the RPC error code written by a handler so the
// metrics layer can label the outcome.
type statusRecorder struct {
	rw      http.ResponseWriter
	errCode int
}

func (r *statusRecorder) Header() http.Header { return r.rw.Header() }

func (r *statusRecorder) WriteHeader(status int) { r.rw.WriteHeader(status) }

func (r *statusRecorder) Write(b []byte) (int, error) {
	var resp RPCResponse
	if err := json.Unmarshal(b, &resp); err == nil && resp.Error != nil {
		r.errCode = resp.Error.Code
	}
	return r.rw.Write(b)
}

func (s *Server) methods() map[string]handlerFunc {
	return map[string]handlerFunc{
		"token_info":         s.handleTokenInfo,
		"token_balanceOf":    s.handleTokenBalanceOf,
		"token_allowance":    s.handleTokenAllowance,
		"token_mint":         s.handleTokenMint,
		"token_burn":         s.handleTokenBurn,
		"token_approve":      s.handleTokenApprove,
		"token_transfer":     s.handleTokenTransfer,
		"token_transferFrom": s.handleTokenTransferFrom,

		"nft_mint":              s.handleNFTMint,
		"nft_balanceOf":         s.handleNFTBalanceOf,
		"nft_ownerOf":           s.handleNFTOwnerOf,
		"nft_tokenURI":          s.handleNFTTokenURI,
		"nft_getApproved":       s.handleNFTGetApproved,
		"nft_isApprovedForAll":  s.handleNFTIsApprovedForAll,
		"nft_approve":           s.handleNFTApprove,
		"nft_setApprovalForAll": s.handleNFTSetApprovalForAll,
		"nft_transferFrom":      s.handleNFTTransferFrom,
		"nft_safeTransferFrom":  s.handleNFTSafeTransferFrom,
		"nft_isMinter":          s.handleNFTIsMinter,
		"nft_grantMinter":       s.handleNFTGrantMinter,
		"nft_revokeMinter":      s.handleNFTRevokeMinter,

		"mt_mint":                  s.handleMultiMint,
		"mt_mintBatch":             s.handleMultiMintBatch,
		"mt_balanceOf":             s.handleMultiBalanceOf,
		"mt_balanceOfBatch":        s.handleMultiBalanceOfBatch,
		"mt_uri":                   s.handleMultiURI,
		"mt_isApprovedForAll":      s.handleMultiIsApprovedForAll,
		"mt_setApprovalForAll":     s.handleMultiSetApprovalForAll,
		"mt_safeTransferFrom":      s.handleMultiSafeTransferFrom,
		"mt_safeBatchTransferFrom": s.handleMultiSafeBatchTransferFrom,
		"mt_isMinter":              s.handleMultiIsMinter,
		"mt_grantMinter":           s.handleMultiGrantMinter,
		"mt_revokeMinter":          s.handleMultiRevokeMinter,

		"market_createItem":    s.handleMarketCreateItem,
		"market_listItem":      s.handleMarketListItem,
		"market_buyItem":       s.handleMarketBuyItem,
		"market_cancel":        s.handleMarketCancel,
		"market_listAuction":   s.handleMarketListAuction,
		"market_makeBid":       s.handleMarketMakeBid,
		"market_finishAuction": s.handleMarketFinishAuction,
		"market_getListing":    s.handleMarketGetListing,
		"market_getAuction":    s.handleMarketGetAuction,

		"node_events": s.handleNodeEvents,
	}
}

// decodeParams unmarshals the first positional parameter into dst.
func decodeParams(req *RPCRequest, dst interface{}) error {
	if len(req.Params) != 1 {
		return fmt.Errorf("expected exactly one params object, got %d", len(req.Params))
	}
	dec := json.NewDecoder(bytes.NewReader(req.Params[0]))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}
