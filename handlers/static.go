package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"excusegen/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// publicDirCandidates はフロントエンドの公開ディレクトリの探索パスです。
// カレントディレクトリ、親、チェックアウト直上、コンテナ配置の順に確認します
var publicDirCandidates = []string{
	"public",
	"../public",
	"excusegen/public",
	"/app/public",
}

const missingPublicHTML = `
<html>
    <head><title>Excuse Gen App</title></head>
    <body>
        <h1>Application Error</h1>
        <p>Public directory not found. Please check the application deployment.</p>
    </body>
</html>
`

const missingIndexHTML = `
<html>
    <head><title>Excuse Gen App</title></head>
    <body>
        <h1>Application Error</h1>
        <p>index.html not found in public directory.</p>
    </body>
</html>
`

// ResolvePublicDir は公開ディレクトリを探索して返します。
// 見つからない場合は空文字列を返します
func ResolvePublicDir() string {
	for _, dir := range publicDirCandidates {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			logger.Logger.Info("公開ディレクトリを検出しました",
				zap.String("path", abs),
			)
			return dir
		}
	}

	logger.Logger.Warn("公開ディレクトリが見つかりません")
	return ""
}

// RegisterStatic はフロントエンド配信用のルートを登録します
func RegisterStatic(r *gin.Engine, publicDir string) {
	r.GET("/", serveIndex(publicDir))

	if publicDir != "" {
		r.Static("/static", publicDir)
	}
}

// serveIndex はフロントエンドのindex.htmlを配信します
func serveIndex(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publicDir == "" {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(missingPublicHTML))
			return
		}

		indexPath := filepath.Join(publicDir, "index.html")
		if _, err := os.Stat(indexPath); err != nil {
			logger.Logger.Warn("index.htmlが見つかりません",
				zap.String("path", indexPath),
			)
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(missingIndexHTML))
			return
		}

		c.File(indexPath)
	}
}
