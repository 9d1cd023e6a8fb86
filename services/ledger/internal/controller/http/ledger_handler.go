package http

import (
	"errors"
	"net/http"
	"strconv"

	"pool-fund/pkg/fee"
	"pool-fund/pkg/logger"
	"pool-fund/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	logger        *logger.Logger
}

func NewLedgerHandler(ledgerUseCase usecase.LedgerUseCase, logger *logger.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

type DepositRequest struct {
	PoolID      string `json:"pool_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Method      string `json:"method" binding:"required"`
}

type TransferRequest struct {
	PoolID      string `json:"pool_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Destination string `json:"destination" binding:"required"`
}

// QuoteFee godoc
// @Summary      Quote deposit fee
// @Description  Fee for a deposit amount. Without method, quotes every supported method.
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        amount_cents  query  int     true   "Deposit amount in cents"
// @Param        method        query  string  false  "venmo, cashapp, paypal, bank or peer"
// @Success      200  {object}  fee.Breakdown
// @Failure      400  {object}  map[string]string
// @Router       /fees [get]
func (h *LedgerHandler) QuoteFee(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount_cents"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents must be an integer"})
		return
	}

	method := c.Query("method")
	if method != "" {
		breakdown, err := h.ledgerUseCase.QuoteFee(amount, method)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, breakdown)
		return
	}

	quotes := make([]*fee.Breakdown, 0, len(fee.Methods()))
	for _, m := range fee.Methods() {
		breakdown, err := h.ledgerUseCase.QuoteFee(amount, string(m))
		if err != nil {
			h.respondError(c, err)
			return
		}
		quotes = append(quotes, breakdown)
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

// CreateDeposit godoc
// @Summary      Start a deposit
// @Description  Creates a pending contribution to a pool and returns the provider client secret
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DepositRequest true "Deposit"
// @Success      201  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /deposits [post]
func (h *LedgerHandler) CreateDeposit(c *gin.Context) {
	userID := c.GetString("user_id")

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.ledgerUseCase.CreateDeposit(c.Request.Context(), userID, req.PoolID, req.AmountCents, req.Method)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// CreateTransfer godoc
// @Summary      Pay out a pool
// @Description  Starts a transfer of pool funds to a destination account (admin only)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TransferRequest true "Transfer"
// @Success      201  {object}  entity.Transfer
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /transfers [post]
func (h *LedgerHandler) CreateTransfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.ledgerUseCase.CreateTransfer(c.Request.Context(), req.PoolID, req.AmountCents, req.Destination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

// GetTransactions godoc
// @Summary      List my contributions
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /transactions [get]
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	userID := c.GetString("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := h.ledgerUseCase.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"limit":        limit,
		"offset":       offset,
	})
}

func (h *LedgerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fee.ErrUnknownMethod),
		errors.Is(err, fee.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPoolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Ledger request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
