// Package handler renders the dashboard routes as JSON page state.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// fail reports a failed backend call as a notification. An expired session
// is turned into a redirect to the login page instead.
func fail(c *gin.Context, scope *middleware.Scope, err error, action string) {
	if scope.Guard(err) {
		return
	}
	_ = c.Error(err)
	if status, ok := apiclient.StatusCode(err); ok {
		utils.ErrorResponse(c, status, action+": "+err.Error())
		return
	}
	utils.ErrorResponse(c, http.StatusBadGateway, action+": backend unavailable")
}

// fetches runs independent page loads concurrently. Each load keeps its own
// error; one failing does not cancel the others.
type fetches map[string]func(ctx context.Context) error

func (f fetches) run(ctx context.Context) map[string]error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs = map[string]error{}
	)
	for name, load := range f {
		name, load := name, load
		g.Go(func() error {
			if err := load(ctx); err != nil {
				mu.Lock()
				errs[name] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// pageErrors turns per-list failures into display messages. It returns
// false when one of them expired the session and the request was redirected.
func pageErrors(scope *middleware.Scope, errs map[string]error) (map[string]string, bool) {
	for _, err := range errs {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			scope.Guard(err)
			return nil, false
		}
	}
	messages := make(map[string]string, len(errs))
	for name, err := range errs {
		if _, ok := apiclient.StatusCode(err); ok {
			messages[name] = err.Error()
		} else {
			messages[name] = "backend unavailable"
		}
	}
	return messages, true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}
