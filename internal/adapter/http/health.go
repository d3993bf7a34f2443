package http

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	db           DatabaseChecker
	cache        CacheChecker
	logger       *zap.Logger
	dependencies []Dependency
}

// DatabaseChecker define a interface para verificar o banco de dados
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker define a interface para verificar o cache
type CacheChecker interface {
	Ping(ctx context.Context) error
}

// Dependency representa um componente do qual o sistema depende
type Dependency struct {
	Name     string
	Check    func(context.Context) error
	Critical bool // Se true, falha deste componente faz o health check falhar
}

// NewHealthChecker cria um novo health checker
func NewHealthChecker(db DatabaseChecker, cache CacheChecker, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		db:     db,
		cache:  cache,
		logger: logger,
	}

	hc.dependencies = []Dependency{
		{
			Name:     "database",
			Check:    db.Ping,
			Critical: true,
		},
		{
			Name:     "cache",
			Check:    cache.Ping,
			Critical: false,
		},
	}

	return hc
}

// LivenessCheck verifica se o aplicativo está vivo (execução básica)
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifica se o aplicativo está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	status := http.StatusOK
	checks := make(map[string]interface{})

	var wg sync.WaitGroup

	// Verificar cada dependência em paralelo
	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			duration := time.Since(start)

			depStatus := "UP"
			if err != nil {
				depStatus = "DOWN"
				h.logger.Error("health check falhou",
					zap.String("dependency", d.Name),
					zap.Error(err))
			}

			mu.Lock()
			if err != nil && d.Critical {
				status = http.StatusServiceUnavailable
			}
			checks[d.Name] = gin.H{
				"status":   depStatus,
				"time":     duration.String(),
				"critical": d.Critical,
			}
			mu.Unlock()
		}(dep)
	}

	wg.Wait()

	overall := "UP"
	if status != http.StatusOK {
		overall = "DOWN"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"time":   time.Now(),
		"checks": checks,
	})
}

// DetailedHealth fornece informações detalhadas sobre o sistema
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var mu sync.Mutex
	status := http.StatusOK
	checks := make(map[string]interface{})

	var wg sync.WaitGroup

	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			duration := time.Since(start)

			depStatus := "UP"
			var errMsg interface{}
			if err != nil {
				depStatus = "DOWN"
				errMsg = err.Error()
			}

			mu.Lock()
			if err != nil && d.Critical {
				status = http.StatusServiceUnavailable
			}
			checks[d.Name] = gin.H{
				"status":   depStatus,
				"time":     duration.String(),
				"critical": d.Critical,
				"error":    errMsg,
			}
			mu.Unlock()
		}(dep)
	}

	wg.Wait()

	overall := "UP"
	if status != http.StatusOK {
		overall = "DOWN"
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"time":        time.Now(),
		"version":     getVersion(),
		"environment": getEnvironment(),
		"checks":      checks,
		"system":      getSystemInfo(),
	})
}

// getVersion retorna a versão do aplicativo
func getVersion() string {
	return os.Getenv("APP_VERSION")
}

// getEnvironment retorna o ambiente atual
func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "development"
	}
	return env
}

// getSystemInfo retorna informações sobre o sistema
func getSystemInfo() gin.H {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return gin.H{
		"go_version":    runtime.Version(),
		"go_os":         runtime.GOOS,
		"go_arch":       runtime.GOARCH,
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
		"memory_alloc": gin.H{
			"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
			"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
			"sys_mb":         float64(m.Sys) / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
	}
}
