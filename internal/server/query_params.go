package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalSnowflakeID(value string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid_snowflake_id")
	}
	return parsed, nil
}

// pathID parses the :id path parameter. Malformed ids answer 404 like any
// other unknown record.
func pathID(c *gin.Context) (snowflake.ID, bool) {
	id, err := parseOptionalSnowflakeID(c.Param("id"))
	if err != nil || id == 0 {
		AbortWithError(c, ErrNotFound)
		return 0, false
	}
	return id, true
}

// queryID parses an optional id filter from the query string.
func queryID(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := parseOptionalSnowflakeID(c.Query(name))
	if err != nil {
		AbortWithError(c, invalidIDError(name))
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	value, err := parseOptionalBool(c.Query(name))
	if err != nil {
		AbortWithError(c, newValidationError(name, "invalid_"+name, "invalid "+name))
		return nil, false
	}
	return value, true
}
