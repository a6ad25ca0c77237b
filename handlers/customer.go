package handlers

import (
	"errors"
	"net/http"
	"strings"

	customerRepo "autoserve/database/repository/customer"
	"autoserve/services/customer"

	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer account endpoints.
type CustomerHandler struct {
	Service customer.CustomerService
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(svc customer.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cust, token, err := h.Service.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, customer.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": cust, "token": token})
}

// Login handles POST /api/customers/login.
func (h *CustomerHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cust, token, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": cust, "token": token})
}

// Me handles GET /api/customers/me.
func (h *CustomerHandler) Me(c *gin.Context) {
	cust, err := h.Service.GetByID(c.Request.Context(), c.GetString("customerID"))
	if errors.Is(err, customerRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customer", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// Logout handles DELETE /api/customers/logout; it revokes the presented
// session token.
func (h *CustomerHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.Service.RevokeToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
