package listingsapi

import (
	"net/http"
	"strconv"

	"booking-app/internal/domain/listings"
	"booking-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	listings *store.ListingStore
	accounts *store.AccountStore
}

func NewHandler(listingStore *store.ListingStore, accountStore *store.AccountStore) *Handler {
	return &Handler{listings: listingStore, accounts: accountStore}
}

// POST /listings — artists list an act. The rate stays free text; the
// pricing engine interprets it at checkout time.
func (h *Handler) CreateListing(c *gin.Context) {
	var body struct {
		Title      string `json:"title" binding:"required"`
		ListedRate string `json:"listed_rate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artistID := c.GetUint("user_id")
	if artistID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	acct, err := h.accounts.GetOrCreateByArtistID(c.Request.Context(), artistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	l := listings.Listing{
		AccountID:  acct.ID,
		Title:      body.Title,
		ListedRate: body.ListedRate,
	}
	if err := h.listings.Create(c.Request.Context(), &l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": l.ID})
}

// GET /listings
func (h *Handler) ListListings(c *gin.Context) {
	list, err := h.listings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for i := range list {
		l := &list[i]
		out = append(out, gin.H{
			"id":          l.ID,
			"title":       l.Title,
			"listed_rate": l.ListedRate,
			"bookable":    l.Account.Payable(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /listings/:id
func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	l, err := h.listings.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          l.ID,
		"title":       l.Title,
		"listed_rate": l.ListedRate,
		"bookable":    l.Account.Payable(),
	})
}
