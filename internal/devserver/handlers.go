package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

func (h *handler) issue(c *gin.Context, status int, u models.User) {
	token, err := GenerateToken(u.ID, u.Role.String(), h.secret, h.ttl, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, models.AuthResponse{Token: token, User: u})
}

func (h *handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	u, err := h.store.Authenticate(req.Email, req.Password, req.Role)
	if err != nil {
		h.log.Warn(c.Request.Context(), "login rejected", "email", req.Email, "error", err)
		fail(c, err)
		return
	}
	h.issue(c, http.StatusOK, u)
}

func (h *handler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	u, err := h.store.Register(req)
	if err != nil {
		fail(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "user registered", "user_id", u.ID, "role", u.Role.String())
	h.issue(c, http.StatusCreated, u)
}

func (h *handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

func (h *handler) listFabrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fabrics": h.store.Fabrics()})
}

func (h *handler) getFabric(c *gin.Context) {
	f, err := h.store.Fabric(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fabric": f})
}

func (h *handler) addReview(c *gin.Context) {
	var r models.Review
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	out, err := h.store.AddReview(currentUser(c).ID, c.Param("id"), r)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": out})
}

func (h *handler) listShops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shops": h.store.Shops()})
}

func (h *handler) getShop(c *gin.Context) {
	s, err := h.store.Shop(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": s})
}

func (h *handler) myShop(c *gin.Context) {
	s, err := h.store.ShopOf(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": s})
}

func (h *handler) shopFabrics(c *gin.Context) {
	list, err := h.store.ShopFabrics(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fabrics": list})
}

func (h *handler) listTailors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tailors": h.store.Tailors()})
}

func (h *handler) getTailor(c *gin.Context) {
	t, err := h.store.Tailor(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tailor": t})
}

func (h *handler) sendInquiry(c *gin.Context) {
	var req models.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	q, err := h.store.SendInquiry(currentUser(c).ID, c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inquiry": q})
}

func (h *handler) listInquiries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"inquiries": h.store.Inquiries(currentUser(c))})
}

func (h *handler) markInquiryRead(c *gin.Context) {
	h.setInquiryStatus(c, models.InquiryRead)
}

func (h *handler) closeInquiry(c *gin.Context) {
	h.setInquiryStatus(c, models.InquiryClosed)
}

func (h *handler) setInquiryStatus(c *gin.Context, status models.InquiryStatus) {
	q, err := h.store.SetInquiryStatus(currentUser(c), c.Param("id"), status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiry": q})
}
