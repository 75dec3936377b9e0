package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Format response standar biar frontend enak bacanya
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"` // omitempty: kalau null, ga usah dimunculin
	Pagination *Pagination `json:"pagination,omitempty"`
	Errors     interface{} `json:"errors,omitempty"` // error per field dari validasi form
}

// Pagination info halaman untuk list
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{Page: page, Limit: limit, TotalItems: total}
	if limit > 0 {
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return p
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

func PaginatedResponse(c *gin.Context, message string, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: p,
	})
}

// ValidationResponse 422 dengan daftar error per field
func ValidationResponse(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
