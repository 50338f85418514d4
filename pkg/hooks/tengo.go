// Package hooks runs user supplied Tengo scripts around a purge pass.
package hooks

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

// HookType names the point at which a script runs.
type HookType string

// Supported hook types.
const (
	PostPurge HookType = "post-purge"
)

// ScriptExt is the required extension of hook script files.
const ScriptExt = ".tengo"

// PurgeContext is exposed to post-purge scripts as the variables cleared,
// failed and results.
type PurgeContext struct {
	Cleared int
	Failed  int
	Results []string
	Vars    map[string]interface{}
}

// TengoExecutor holds one script per hook type.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an executor with no scripts.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{scripts: make(map[HookType]string)}
}

// LoadFile reads a .tengo script from disk and registers it for hookType.
func (e *TengoExecutor) LoadFile(hookType HookType, path string) error {
	if filepath.Ext(path) != ScriptExt {
		return errors.Wrapf(errors.ErrHookLoad, "%s: expected a %s script", path, ScriptExt)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrHookLoad), "%s", path)
	}
	e.AddScript(hookType, string(content))
	return nil
}

// AddScript adds or replaces the script for hookType.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// HasScript reports whether a script is registered for hookType.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}

// Execute runs the script registered for hookType. Missing scripts are a no-op.
// A script signals failure by assigning a non-empty string or error to err.
func (e *TengoExecutor) Execute(ctx context.Context, hookType HookType, pc PurgeContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	s := tengo.NewScript([]byte(script))
	s.SetImports(stdlib.GetModuleMap("fmt", "text", "times", "json"))

	results := make([]interface{}, len(pc.Results))
	for i, r := range pc.Results {
		results[i] = r
	}
	vars := map[string]interface{}{
		"cleared": pc.Cleared,
		"failed":  pc.Failed,
		"results": results,
		"err":     "",
	}
	for k, v := range pc.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := s.Add(k, v); err != nil {
			return errors.Wrapf(err, "failed to add variable '%s' to script", k)
		}
	}

	compiled, err := s.RunContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrHookExecution), "%s", hookType)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Mark(v, errors.ErrHookScript)
		case string:
			if v != "" {
				return errors.Wrapf(errors.ErrHookScript, "%s", v)
			}
		}
	}
	return nil
}
