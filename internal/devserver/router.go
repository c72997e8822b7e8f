package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// Options configures NewRouter.
type Options struct {
	SecretKey []byte
	TokenTTL  time.Duration
	Logger    logging.Logger
	// Registry receives the request metrics and is served on /metrics. Nil
	// disables both.
	Registry *prometheus.Registry
}

type handler struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	log    logging.Logger
}

// NewRouter wires every API route under /api/v1.
func NewRouter(store *Store, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	h := &handler{store: store, secret: opts.SecretKey, ttl: opts.TokenTTL, log: opts.Logger}

	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Registry != nil {
		router.Use(metricsMiddleware(newServerMetrics(opts.Registry)))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	router.Use(requestLogger(opts.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
	})

	idem := newIdempotencyCache()
	customer := requireRole(models.RoleCustomer)
	tailor := requireRole(models.RoleTailor)
	shop := requireRole(models.RoleShop)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.login)
		v1.POST("/auth/register", h.register)

		v1.GET("/fabrics", h.listFabrics)
		v1.GET("/fabrics/:id", h.getFabric)
		v1.GET("/shops", h.listShops)
		v1.GET("/shops/:id", h.getShop)
		v1.GET("/shops/:id/fabrics", h.shopFabrics)
		v1.GET("/tailors", h.listTailors)
		v1.GET("/tailors/:id", h.getTailor)
	}

	authed := v1.Group("", h.authRequired, idem.middleware)
	{
		authed.GET("/auth/me", h.me)
		authed.GET("/shops/me", shop, h.myShop)

		authed.POST("/fabrics/:id/reviews", customer, h.addReview)
		authed.POST("/tailors/:id/inquiries", customer, h.sendInquiry)

		authed.GET("/inquiries", h.listInquiries)
		authed.PATCH("/inquiries/:id/read", tailor, h.markInquiryRead)
		authed.PATCH("/inquiries/:id/close", tailor, h.closeInquiry)

		authed.GET("/cart", customer, h.getCart)
		authed.POST("/cart/items", customer, h.addCartItem)
		authed.PUT("/cart/items/:id", customer, h.updateCartItem)
		authed.DELETE("/cart/items/:id", customer, h.removeCartItem)
		authed.DELETE("/cart", customer, h.clearCart)

		authed.POST("/orders", customer, h.createOrder)
		authed.GET("/orders", h.listOrders)
		authed.GET("/orders/:id", h.getOrder)

		authed.GET("/users/profile", h.getProfile)
		authed.PUT("/users/profile", h.updateProfile)
		authed.GET("/users/addresses", h.listAddresses)
		authed.POST("/users/addresses", h.addAddress)
		authed.PUT("/users/addresses/:id", h.updateAddress)
		authed.DELETE("/users/addresses/:id", h.deleteAddress)

		authed.POST("/upload/single", h.uploadSingle)
		authed.POST("/upload/multiple", h.uploadMultiple)
	}

	return router
}

// fail writes err as {"message": ...} with the status of its kind.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msg})
}
