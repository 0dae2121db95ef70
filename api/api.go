package api

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"marketmap/internal/app"
	"marketmap/internal/logger"
	"marketmap/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	SnapshotHandler app.SnapshotHandler
	GptRepository   repository.GptRepository
	JwtSigningKey   string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to marketmap"})
	})
	router.POST("/snapshot", m.snapshot)
	router.POST("/heatmap", m.heatmap)
	router.POST("/movers", m.movers)
	router.POST("/commentary", m.authMiddleware(), m.commentary)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Println(fmt.Errorf("failed to get raw data: %w", err))
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	requestID := uuid.New()
	ctx.Set(logger.ContextKey, logger.New().With("requestId", requestID.String()))
	logger.Info("request %s: %s %s %s", requestID, ctx.Request.Method, ctx.Request.URL.Path, truncate(string(body), 512))

	ctx.Next()

	logger.Info("request %s: responded %d %s", requestID, ctx.Writer.Status(), truncate(w.body.String(), 512))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
