// Package handler exposes the HTTP surface of the fraud service.
package handler

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nithin-250/RMAN5/internal/metrics"
	"github.com/Nithin-250/RMAN5/internal/models"
	"github.com/Nithin-250/RMAN5/internal/service"
	"github.com/Nithin-250/RMAN5/internal/store"
)

// FraudHandler holds the handlers for fraud checks and reporting endpoints.
type FraudHandler struct {
	engine       *service.FraudEngine
	transactions store.TransactionStore
	blacklist    store.BlacklistStore
	collector    *metrics.Collector
	logger       *zap.Logger
}

// NewFraudHandler creates the handler set.
func NewFraudHandler(engine *service.FraudEngine, transactions store.TransactionStore, blacklist store.BlacklistStore, collector *metrics.Collector, logger *zap.Logger) *FraudHandler {
	return &FraudHandler{
		engine:       engine,
		transactions: transactions,
		blacklist:    blacklist,
		collector:    collector,
		logger:       logger,
	}
}

// CheckFraud evaluates one transaction and returns the verdict with its
// ordered reason list.
func (h *FraudHandler) CheckFraud(c *gin.Context) {
	var txn models.Transaction
	if err := c.ShouldBindJSON(&txn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.engine.Evaluate(c.Request.Context(), &txn, clientIP(c.Request))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimestamp) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to evaluate transaction",
			zap.Error(err),
			zap.String("transaction_id", txn.TransactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate transaction"})
		return
	}

	h.collector.RecordCheck(result.Fraud, time.Since(start))
	c.JSON(http.StatusOK, result)
}

// ListTransactions returns every stored transaction.
func (h *FraudHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactions.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	if txs == nil {
		txs = []models.StoredTransaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// ListBlacklist returns every blacklist entry.
func (h *FraudHandler) ListBlacklist(c *gin.Context) {
	entries, err := h.blacklist.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list blacklist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blacklist"})
		return
	}
	if entries == nil {
		entries = []models.BlacklistEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// clientIP resolves the caller's origin address, preferring the first entry
// of X-Forwarded-For when present, else the direct connection address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
