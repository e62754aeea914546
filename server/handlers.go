package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

func (s *Server) root(c *gin.Context) {
	ids := make([]string, 0, len(s.registry.Descriptors()))
	for _, d := range s.registry.Descriptors() {
		ids = append(ids, string(d.ID))
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Agent Gateway is running! 🤖",
		"version":  "1.0.0",
		"agents":   ids,
		"features": []string{"PDF upload", "Multi-agent support", "POS system"},
	})
}

func (s *Server) agents(c *gin.Context) {
	agents := gin.H{}
	for _, d := range s.registry.Descriptors() {
		agents[string(d.ID)] = gin.H{
			"name":         d.Name,
			"description":  d.Description,
			"capabilities": d.Capabilities,
		}
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

func (s *Server) chat(c *gin.Context) {
	message := c.PostForm("message")
	if strings.TrimSpace(message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	capabilityID := contractx.CapabilityID(c.DefaultPostForm("agent", string(contractx.CapabilityGeneral)))

	var attachments []contractx.Attachment
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["files"] {
			data, err := readUpload(header)
			if err != nil {
				log.Warn().Err(err).Str("file", header.Filename).Msg("skipping unreadable upload")
				continue
			}
			attachments = append(attachments, contractx.Attachment{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	reply := s.dispatcher.Dispatch(c.Request.Context(), message, capabilityID, attachments)
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

type addItemRequest struct {
	Name     string  `form:"name" json:"name" binding:"required"`
	Price    float64 `form:"price" json:"price" binding:"required"`
	Quantity int     `form:"quantity" json:"quantity"`
}

func (s *Server) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	msg, err := s.engine.AddItem(req.Name, req.Price, req.Quantity)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cart":       s.engine.CartLines(),
		"total":      s.engine.Total(),
		"item_count": s.engine.ItemCount(),
	})
}

type checkoutRequest struct {
	Method string `form:"method" json:"method" binding:"required"`
}

func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	receipt, err := s.engine.Checkout(req.Method)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": receipt})
}

func (s *Server) clearCart(c *gin.Context) {
	s.engine.Clear()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "🗑️ Cart cleared successfully!"})
}
