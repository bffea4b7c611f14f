package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bqmanh/marketplace-be/internal/api/domain"
	"github.com/bqmanh/marketplace-be/internal/api/dto"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBid handles POST /bids
// Creates a bid, enforcing one bid per (bidder email, job) pair.
func (h *BidHandler) CreateBid(c *gin.Context) {
	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	exists, err := h.bids.BidExists(c.Request.Context(), req.Email, req.JobID)
	if err != nil {
		h.logger.Error("Failed to check for existing bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create bid",
		})
		return
	}
	if exists {
		c.String(http.StatusBadRequest, "BID ALREADY EXISTED")
		return
	}

	status := req.Status
	if status == "" {
		status = domain.BidStatusPending
	}

	bid := model.Bid{
		BidID:       uuid.New().String(),
		JobID:       req.JobID,
		BidderEmail: req.Email,
		BuyerEmail:  req.BuyerEmail,
		Price:       req.Price,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.Comment != "" {
		bid.Comment = sql.NullString{String: req.Comment, Valid: true}
	}

	if err := h.bids.CreateBid(c.Request.Context(), &bid); err != nil {
		// A concurrent submission can slip past the existence check; the
		// unique index turns the loser into ErrDuplicateBid.
		if errors.Is(err, domain.ErrDuplicateBid) {
			c.String(http.StatusBadRequest, "BID ALREADY EXISTED")
			return
		}
		h.logger.Error("Failed to create bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create bid",
		})
		return
	}

	h.logger.Info("Bid created",
		slog.String("bid_id", bid.BidID),
		slog.String("job_id", bid.JobID),
		slog.String("bidder_email", bid.BidderEmail),
	)

	h.publishBidEvent(c, events.TypeBidCreated, &bid)

	c.JSON(http.StatusOK, dto.BidFromModel(&bid))
}

// ListBids handles GET /bids
// Lists every bid.
func (h *BidHandler) ListBids(c *gin.Context) {
	bids, err := h.bids.ListBids(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list bids", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BidsFromModels(bids))
}

// ListMyBids handles GET /my-bids/:email
// Lists the bids submitted by the authenticated bidder.
func (h *BidHandler) ListMyBids(c *gin.Context) {
	email := c.Param("email")

	bids, err := h.bids.ListBidsByBidder(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list bids by bidder", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BidsFromModels(bids))
}

// ListBidRequests handles GET /bid-requests/:email
// Lists the bids received on jobs posted by the authenticated buyer.
func (h *BidHandler) ListBidRequests(c *gin.Context) {
	email := c.Param("email")

	bids, err := h.bids.ListBidsByBuyer(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list bids by buyer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BidsFromModels(bids))
}

// UpdateBidStatus handles PATCH /bids/:id
// Updates the status field of a bid.
func (h *BidHandler) UpdateBidStatus(c *gin.Context) {
	bidID := c.Param("id")
	if _, err := uuid.Parse(bidID); err != nil {
		h.logger.Error("Invalid bid id format", slog.String("id", bidID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	var req dto.UpdateBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	modified, err := h.bids.UpdateBidStatus(c.Request.Context(), bidID, req.Status)
	if err != nil {
		h.logger.Error("Failed to update bid status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update bid status",
		})
		return
	}

	h.logger.Info("Bid status updated",
		slog.String("bid_id", bidID),
		slog.String("status", req.Status),
		slog.Int64("modified", modified),
	)

	if modified > 0 {
		if bid, err := h.bids.GetBidByID(c.Request.Context(), bidID); err == nil {
			h.publishBidEvent(c, events.TypeBidStatusChanged, bid)
		}
	}

	c.JSON(http.StatusOK, gin.H{"modified": modified})
}

// publishBidEvent pushes a bid-activity event onto the broker. The audit
// pipeline is best-effort: a publish failure is logged, never surfaced to
// the HTTP caller.
func (h *BidHandler) publishBidEvent(c *gin.Context, eventType string, bid *model.Bid) {
	if h.publisher == nil {
		return
	}

	event := events.BidEvent{
		EventID:     uuid.New().String(),
		EventType:   eventType,
		BidID:       bid.BidID,
		JobID:       bid.JobID,
		BidderEmail: bid.BidderEmail,
		BuyerEmail:  bid.BuyerEmail,
		Price:       bid.Price,
		Status:      bid.Status,
		OccurredAt:  time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal bid event", slog.String("error", err.Error()))
		return
	}

	if err := h.publisher.PublishWithRetry(c.Request.Context(), body, "application/json"); err != nil {
		h.logger.Error("Failed to publish bid event",
			slog.String("event_type", eventType),
			slog.String("bid_id", bid.BidID),
			slog.String("error", err.Error()),
		)
	}
}
