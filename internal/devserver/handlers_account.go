package devserver

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

const (
	maxUploadSize  = 5 << 20
	maxUploadFiles = 10
)

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// Cart handlers answer with the bare cart snapshot.

func (h *handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Cart(currentUser(c).ID))
}

func (h *handler) addCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	cart, err := h.store.AddToCart(currentUser(c).ID, req.FabricID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handler) updateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	cart, err := h.store.SetCartQuantity(currentUser(c).ID, c.Param("id"), req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handler) removeCartItem(c *gin.Context) {
	cart, err := h.store.RemoveFromCart(currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handler) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ClearCart(currentUser(c).ID))
}

func (h *handler) createOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	o, err := h.store.PlaceOrder(currentUser(c).ID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "order placed", "order_id", o.ID, "amount", o.TotalAmount)
	c.JSON(http.StatusCreated, gin.H{"order": o})
}

func (h *handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.store.Orders(currentUser(c).ID)})
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.store.Order(currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

func (h *handler) updateProfile(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	u, err := h.store.UpdateProfile(currentUser(c).ID, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handler) listAddresses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addresses": h.store.Addresses(currentUser(c).ID)})
}

func (h *handler) addAddress(c *gin.Context) {
	var a models.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	out, err := h.store.AddAddress(currentUser(c).ID, a)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": out})
}

func (h *handler) updateAddress(c *gin.Context) {
	var a models.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	a.ID = c.Param("id")
	out, err := h.store.UpdateAddress(currentUser(c).ID, a)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": out})
}

func (h *handler) deleteAddress(c *gin.Context) {
	if err := h.store.DeleteAddress(currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkImage validates one uploaded part and returns the URL it would be
// served from. Uploaded bytes are not kept.
func checkImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch {
	case !imageExt[ext]:
		return "", newError(errInvalid, "Only image files are allowed")
	case fh.Size > maxUploadSize:
		return "", newError(errInvalid, "File too large")
	}
	return fmt.Sprintf("/uploads/%s%s", newID(), ext), nil
}

func (h *handler) uploadSingle(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	url, err := checkImage(fh)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UploadResult{URL: url})
}

func (h *handler) uploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		badRequest(c, "No files uploaded")
		return
	}
	files := form.File["images"]
	if len(files) > maxUploadFiles {
		badRequest(c, fmt.Sprintf("At most %d files per upload", maxUploadFiles))
		return
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := checkImage(fh)
		if err != nil {
			fail(c, err)
			return
		}
		urls = append(urls, url)
	}
	c.JSON(http.StatusOK, models.MultiUploadResult{URLs: urls})
}
