package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jerseyorders/internal/forms"
	"jerseyorders/internal/lifecycle"
	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

const storeTimeout = 5 * time.Second

/* =========================
   REQUEST DTOs
========================= */

type createOrderRequest struct {
	CustomerName        string `json:"customerName" binding:"required"`
	CustomerEmail       string `json:"customerEmail" binding:"required"`
	CustomerPhone       string `json:"customerPhone" binding:"required"`
	JerseyQuantity      int    `json:"jerseyQuantity" binding:"required,gte=1,lte=10"`
	SpecialInstructions string `json:"specialInstructions"`
}

type sendNotificationRequest struct {
	Type    string `json:"type" binding:"required,oneof=email sms"`
	Message string `json:"message"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(engine *lifecycle.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := engine.Create(ctx, models.Order{
			CustomerName:        strings.TrimSpace(req.CustomerName),
			CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
			CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
			JerseyQuantity:      req.JerseyQuantity,
			SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to create order, please retry")
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.ID)
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

/* =========================
   LIST / GET / DELETE
========================= */

func ListOrders(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := store.Filter{
			Search:    c.Query("search"),
			DateRange: c.Query("date"),
		}
		if status := c.Query("status"); status != "" && status != "all" {
			filter.Status = models.Status(status)
		}
		switch c.Query("details") {
		case "with_details":
			yes := true
			filter.HasDetails = &yes
		case "without_details":
			no := false
			filter.HasDetails = &no
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		orders, err := st.List(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": paginate(orders, page, limit),
			"total":  len(orders),
			"page":   page,
			"limit":  limit,
		})
	}
}

func GetOrder(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := st.Get(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "order could not be fetched")
			return
		}

		resp := gin.H{
			"order":          order,
			"defaultMessage": lifecycle.DefaultMessage(order),
		}
		if order.HasDetails() {
			resp["summary"] = forms.Summarize(order.CustomerDetails)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func DeleteOrder(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		err := st.Delete(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to delete order, please retry")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

/* =========================
   LIFECYCLE ACTIONS
========================= */

func ApproveOrder(engine *lifecycle.Engine) gin.HandlerFunc {
	return reviewHandler("POST /api/orders/:id/approve", (*lifecycle.Engine).Approve, engine)
}

func RejectOrder(engine *lifecycle.Engine) gin.HandlerFunc {
	return reviewHandler("POST /api/orders/:id/reject", (*lifecycle.Engine).Reject, engine)
}

func reviewHandler(route string, action func(*lifecycle.Engine, context.Context, string) (models.Order, error), engine *lifecycle.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := action(engine, ctx, c.Param("id"))
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		case errors.Is(err, lifecycle.ErrInvalidTransition):
			respondWithError(c, http.StatusConflict, route, "order can no longer be reviewed")
			return
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order, please retry")
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func GenerateLink(engine *lifecycle.Engine, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/link"
		id := c.Param("id")

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := engine.GenerateLink(ctx, id, baseURL)
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		case errors.Is(err, lifecycle.ErrLinkAlreadyGenerated):
			respondWithError(c, http.StatusConflict, route, "customer link already generated")
			return
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order, please retry")
			return
		}

		// Short link generation is best-effort and must never block the
		// response; the long URL works either way.
		go func() {
			shortCtx, shortCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shortCancel()
			engine.AttachShortLink(shortCtx, id)
		}()

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func SendNotification(engine *lifecycle.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/notifications"

		var req sendNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "notification type must be email or sms")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := engine.Notify(ctx, c.Param("id"), req.Type, req.Message)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order, please retry")
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
