package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

// Stats serves the dashboard counters: total orders plus a breakdown by
// lifecycle status.
func Stats(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/stats"

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		orders, err := st.List(ctx, store.Filter{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "stats could not be computed")
			return
		}

		byStatus := map[models.Status]int{}
		for _, o := range orders {
			byStatus[o.Status]++
		}

		c.JSON(http.StatusOK, gin.H{
			"totalOrders":      len(orders),
			"pendingOrders":    byStatus[models.StatusPending],
			"approvedOrders":   byStatus[models.StatusApproved],
			"rejectedOrders":   byStatus[models.StatusRejected],
			"detailsSubmitted": byStatus[models.StatusDetailsSubmitted],
		})
	}
}
