package web

import (
	"context"
	"net/http"
	"strings"
)

// headerPurger purges a LiteSpeed page cache by tagging the response; the
// LiteSpeed front end acts on the header and strips it.
type headerPurger struct {
	w http.ResponseWriter
}

func (p headerPurger) PurgeAll(_ context.Context) error {
	p.w.Header().Set(LiteSpeedPurgeHeader, "*")
	return nil
}

func liteSpeedFront(serverSoftware string) bool {
	return strings.Contains(strings.ToLower(serverSoftware), "litespeed")
}
