package handler

import (
	"net/http"
	"strconv"

	"basemap/internal/apperrors"
	"basemap/internal/repository"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationSvc *service.LocationService
}

func NewLocationHandler(locationSvc *service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// List returns visible locations, optionally filtered by country, height
// range and free-text search.
func (h *LocationHandler) List(c *gin.Context) {
	f := repository.LocationFilter{
		Country: c.Query("country"),
		Search:  c.Query("search"),
	}
	if v := c.Query("min_height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, apperrors.InvalidInput("min_height must be an integer"))
			return
		}
		f.MinHeight = &n
	}
	if v := c.Query("max_height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, apperrors.InvalidInput("max_height must be an integer"))
			return
		}
		f.MaxHeight = &n
	}
	list, err := h.locationSvc.List(f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"locations": list, "total_count": len(list)})
}

func (h *LocationHandler) Get(c *gin.Context) {
	id, err := parseLocationID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	loc, err := h.locationSvc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, loc)
}

func parseLocationID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid location id")
	}
	return uint(id), nil
}
