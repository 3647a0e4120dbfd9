package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/dto"
	"github.com/shakotgabriel/tanina/internal/middleware"
)

// transactionHandler handles HTTP requests for money movement operations.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ledgerService portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ledgerService}
}

// registerTransactionRoutes mounts the ledger endpoints onto the v1 group.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)
	txns := rg.Group("/transactions")
	txns.POST("/deposit", h.deposit)
	txns.POST("/withdraw", h.withdraw)
	txns.POST("/transfer", h.transfer)
	txns.POST("/send-money", h.sendMoney)
	txns.POST("/convert", h.convertCurrency)

	wallets := rg.Group("/wallets")
	wallets.GET("/:walletID/transactions", h.getTransactionHistory)
}

// deposit godoc
// @Summary Deposit funds
// @Description Credits the account's default-currency wallet
// @Tags transactions
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit data"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found or inactive"
// @Router /transactions/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.ledgerService.Deposit(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Withdraw funds
// @Description Debits the account's default-currency wallet
// @Tags transactions
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal data"
// @Success 200 {object} dto.TransactionResponse
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /transactions/withdraw [post]
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// transfer godoc
// @Summary Transfer funds between accounts
// @Description Moves funds between two accounts' same-currency wallets atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer data"
// @Success 200 {object} dto.TransactionResponse
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /transactions/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.ledgerService.Transfer(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// sendMoney godoc
// @Summary Send money by account number
// @Description Moves funds between accounts addressed by their 10-digit account numbers
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.SendMoneyRequest true "Send money data"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Sender or receiver account not found or inactive"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /transactions/send-money [post]
func (h *transactionHandler) sendMoney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SendMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for sendMoney", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.ledgerService.SendMoney(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// convertCurrency godoc
// @Summary Convert between the user's currency wallets
// @Description Exchanges funds between two wallets of the authenticated user at the configured rate
// @Tags transactions
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertCurrencyRequest true "Conversion data"
// @Success 200 {object} dto.ConversionResult
// @Failure 400 {object} map[string]string "Identical currencies"
// @Failure 422 {object} map[string]string "No rate configured or insufficient funds"
// @Router /transactions/convert [post]
func (h *transactionHandler) convertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convertCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.ledgerService.ConvertCurrency(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getTransactionHistory godoc
// @Summary List a wallet's transaction history
// @Description Returns completed transactions touching the wallet, newest first, with token pagination
// @Tags transactions
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Pagination cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Router /wallets/{walletID}/transactions [get]
func (h *transactionHandler) getTransactionHistory(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.GetTransactionHistory(c.Request.Context(), c.Param("walletID"), params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
