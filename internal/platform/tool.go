package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"golang.org/x/sync/singleflight"
)

// ErrExecutableNotFound is returned when yt-dlp is neither configured, on
// PATH, nor allowed to be installed.
var ErrExecutableNotFound = errors.New("yt-dlp executable not found")

// Tool constants
const (
	YTDLPCommand   = "yt-dlp"
	VersionFlag    = "--version"
	VersionTimeout = 10 * time.Second
	InstallTimeout = 5 * time.Minute

	installKey = "yt-dlp"
)

// ToolResolver finds the yt-dlp executable. Lookup order: the configured
// path, PATH, then a managed install through go-ytdlp when allowed.
type ToolResolver struct {
	mu             sync.Mutex
	configuredPath string
	allowInstall   bool
	cached         string
	generation     uint64 // bumped by Configure

	installs singleflight.Group
	lookPath func(string) (string, error)
	install  func(ctx context.Context) (string, error)
}

// NewToolResolver creates a resolver
func NewToolResolver(configuredPath string, allowInstall bool) *ToolResolver {
	return &ToolResolver{
		configuredPath: strings.TrimSpace(configuredPath),
		allowInstall:   allowInstall,
		lookPath:       exec.LookPath,
		install:        installYTDLP,
	}
}

// Configure changes the lookup inputs and drops the cached result
func (r *ToolResolver) Configure(configuredPath string, allowInstall bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configuredPath = strings.TrimSpace(configuredPath)
	r.allowInstall = allowInstall
	r.cached = ""
	r.generation++
}

// Resolve returns the path of a usable yt-dlp executable. A managed install
// runs outside the lock and is shared by concurrent callers; each caller
// stops waiting when its own ctx is done.
func (r *ToolResolver) Resolve(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.cached != "" {
		path := r.cached
		r.mu.Unlock()
		return path, nil
	}
	configuredPath, allowInstall, generation := r.configuredPath, r.allowInstall, r.generation
	r.mu.Unlock()

	if configuredPath != "" {
		info, err := os.Stat(configuredPath)
		if err != nil {
			return "", fmt.Errorf("%w: configured path %s: %v", ErrExecutableNotFound, configuredPath, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: configured path %s is a directory", ErrExecutableNotFound, configuredPath)
		}
		return r.store(generation, configuredPath), nil
	}

	if path, err := r.lookPath(YTDLPCommand); err == nil {
		return r.store(generation, path), nil
	}

	if !allowInstall {
		return "", fmt.Errorf("%w: install yt-dlp or set its path in settings", ErrExecutableNotFound)
	}

	ch := r.installs.DoChan(installKey, func() (any, error) {
		// outlives the caller that started it so later callers can share it
		installCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), InstallTimeout)
		defer cancel()

		log.Printf("yt-dlp not found on PATH, installing managed copy")
		return r.install(installCtx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for yt-dlp install: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", fmt.Errorf("failed to install yt-dlp: %w", res.Err)
		}
		path := res.Val.(string)
		if !res.Shared {
			log.Printf("Using managed yt-dlp: %s", path)
		}
		return r.store(generation, path), nil
	}
}

// store caches path unless Configure ran since the lookup started
func (r *ToolResolver) store(generation uint64, path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation == generation {
		r.cached = path
	}
	return path
}

// installYTDLP downloads yt-dlp into the go-ytdlp cache, or reuses a cached copy
func installYTDLP(ctx context.Context) (string, error) {
	resolved, err := goytdlp.Install(ctx, nil)
	if err != nil {
		return "", err
	}
	return resolved.Executable, nil
}

// ToolVersion runs "yt-dlp --version" through go-ytdlp
func ToolVersion(ctx context.Context, executable string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()

	res, err := goytdlp.New().SetExecutable(executable).Version(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to run %s %s: %w", executable, VersionFlag, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}
