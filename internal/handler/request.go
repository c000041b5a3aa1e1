package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
)

// requestBase returns scheme://host of the incoming request, used to
// absolutize local upload URLs in responses
func requestBase(c *gin.Context) string {
	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// intParam parses a numeric path parameter; ok is false on garbage
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}

// parsePostFilters maps the board list query string onto PostFilters.
// is_public / is_deleted are only honored on the admin surface; the
// caller decides whether to apply them.
func parsePostFilters(c *gin.Context) *dto.PostFilters {
	return &dto.PostFilters{
		BoardType:    c.Query("board_type"),
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		CategoryCode: c.Query("category_code"),
		CompanyNo:    queryInt(c, "company_no"),
		IsPublic:     queryBool(c, "is_public"),
		IsDeleted:    queryBool(c, "is_deleted"),
		SortBy:       c.Query("sort_by"),
		Order:        c.Query("order"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}
}

func parsePolicyFilters(c *gin.Context) *dto.PolicyFilters {
	return &dto.PolicyFilters{
		CategoryCode: c.Query("categoryCode"),
		CategoryName: c.Query("categoryName"),
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
		IsVisible:    queryBool(c, "isVisible"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}
}
