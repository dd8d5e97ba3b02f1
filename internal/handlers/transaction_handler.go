package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
	"expenis/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListTransactionsRequest represents the query parameters for listing transactions
type ListTransactionsRequest struct {
	DateFrom time.Time `form:"date_from" time_format:"2006-01-02" binding:"required"`
	DateTo   time.Time `form:"date_to" time_format:"2006-01-02" binding:"required"`
	Type     string    `form:"type" binding:"omitempty,category_type"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID          uint    `json:"id"`
	Account     string  `json:"account"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ListTransactions returns the authenticated user's transactions for an
// inclusive date range, optionally filtered by category type.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidationFailed, err.Error()))
		return
	}

	filter := services.TransactionFilter{}
	if req.Type != "" {
		categoryType := models.CategoryType(req.Type)
		filter.CategoryType = &categoryType
	}

	transactions, err := h.transactionService.GetForPeriod(userID, req.DateFrom, req.DateTo, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, TransactionResponse{
			ID:          tx.ID,
			Account:     tx.Account.Name,
			Type:        string(tx.Category.Type),
			Category:    tx.Category.Name,
			Amount:      tx.Amount,
			Description: tx.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"transactions": items})
}
