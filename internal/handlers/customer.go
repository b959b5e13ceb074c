package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jerseyorders/internal/demo"
	"jerseyorders/internal/forms"
	"jerseyorders/internal/lifecycle"
	"jerseyorders/internal/links"
	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

// Resolution sources reported to the customer page.
const (
	sourcePayload   = "payload"
	sourceStore     = "store"
	sourceSynthetic = "synthetic"
)

type submitDetailsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// ResolveOrder loads the order behind a shareable link. Precedence: a valid
// payload token whose id matches the order parameter wins and skips the
// store entirely; then a store lookup; then the synthetic fallback so the
// form stays exercisable without a backend.
func ResolveOrder(st store.Store, gen *demo.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customer/order"

		orderID := c.Query("order")
		if orderID == "" {
			order := demoOrder()
			c.JSON(http.StatusOK, customerView(order, sourceSynthetic,
				"You are viewing a demo of the Jersey Details Collection form. In a real scenario, this would be accessed via a unique order link."))
			return
		}

		if token := c.Query("payload"); token != "" {
			snapshot, err := links.DecodePayload(token, orderID)
			if err == nil {
				c.JSON(http.StatusOK, customerView(snapshot.Order(), sourcePayload,
					"Your order has been successfully loaded. Please provide your jersey details below."))
				return
			}
			// Decode failures downgrade silently to a store lookup.
			log.Printf("[%s] payload ignored for %s: %v", route, orderID, err)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := st.Get(ctx, orderID)
		if err == nil {
			c.JSON(http.StatusOK, customerView(order, sourceStore,
				"Your order has been successfully loaded. Please provide your jersey details below."))
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusInternalServerError, route, "unable to load order data, please try again later")
			return
		}

		order = gen.Order(orderID)
		notice := "This is a simulated order for testing purposes."
		if order.OrderType == demo.OrderTypeLive {
			notice = "Your order has been successfully loaded. Please provide your jersey details below."
		}
		c.JSON(http.StatusOK, customerView(order, sourceSynthetic, notice))
	}
}

// SubmitDetails validates the raw form fields against the order's quantity
// and hands the aggregated list to the lifecycle engine. Live submissions
// always go through the store, even when the page rendered from a payload.
func SubmitDetails(engine *lifecycle.Engine, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /customer/order/:id/details"
		defer handlePanic(c, route)

		var req submitDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		orderID := c.Param("id")
		order, err := st.Get(ctx, orderID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found, please check your link and try again")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "unable to load order data, please try again later")
			return
		}

		details, vErr := forms.ValidateSubmission(req.Fields, order.JerseyQuantity)
		if vErr != nil {
			// The client keeps its form state; only the bad index is
			// reported so the customer can correct and resubmit.
			c.JSON(http.StatusBadRequest, gin.H{
				"error":         vErr.Error(),
				"jerseyIndex":   vErr.Index,
				"missingFields": vErr.Missing,
			})
			return
		}

		updated, err := engine.SubmitDetails(ctx, orderID, details)
		switch {
		case errors.Is(err, lifecycle.ErrDetailsAlreadySubmitted):
			respondWithError(c, http.StatusConflict, route, "details already submitted for this order")
			return
		case err != nil:
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order, please try again")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":   updated,
			"summary": forms.Summarize(updated.CustomerDetails),
		})
	}
}

// customerView assembles the customer page model: the order, where it was
// resolved from, and either the form schema or the read-only summary when
// details already exist.
func customerView(order models.Order, source, notice string) gin.H {
	view := gin.H{
		"order":  order,
		"source": source,
		"notice": notice,
	}
	if order.HasDetails() {
		view["summary"] = forms.Summarize(order.CustomerDetails)
		view["submitted"] = true
	} else {
		view["schema"] = forms.Schema(order.JerseyQuantity)
	}
	return view
}

// demoOrder is shown when no order id is supplied at all.
func demoOrder() models.Order {
	return models.Order{
		ID:                  "ORD-001",
		CustomerName:        "John Doe",
		CustomerEmail:       "john.doe@example.com",
		CustomerPhone:       "+1-555-0123",
		JerseyQuantity:      2,
		Status:              models.StatusPending,
		SpecialInstructions: "Please ensure high quality materials are used.",
		CreatedDate:         time.Now(),
		OrderType:           demo.OrderTypeSimulated,
	}
}
