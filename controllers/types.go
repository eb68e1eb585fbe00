package controllers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CollectionMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type CollectionLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// CollectionResponse is the list envelope: {data, meta, links}.
type CollectionResponse struct {
	Data  interface{}     `json:"data"`
	Meta  CollectionMeta  `json:"meta"`
	Links CollectionLinks `json:"links"`
}

// ResourceResponse is the single-resource envelope: {data}.
type ResourceResponse struct {
	Data interface{} `json:"data"`
}

func NewCollectionResponse(c *gin.Context, data interface{}, page, perPage int, total int64) CollectionResponse {
	lastPage := int(math.Ceil(float64(total) / float64(perPage)))
	if lastPage < 1 {
		lastPage = 1
	}

	pageLink := func(p int) string {
		return fmt.Sprintf("%s?page=%d", c.Request.URL.Path, p)
	}

	links := CollectionLinks{
		First: pageLink(1),
		Last:  pageLink(lastPage),
	}
	if page > 1 {
		prev := pageLink(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageLink(page + 1)
		links.Next = &next
	}

	return CollectionResponse{
		Data: data,
		Meta: CollectionMeta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    lastPage,
		},
		Links: links,
	}
}

// RespondValidationError replies 422 with a field-keyed error map.
func RespondValidationError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  gin.H{field: []string{message}},
	})
}

// RespondBindingError replies 422 for malformed or incomplete request bodies.
func RespondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
}
