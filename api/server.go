// Package api はshapekitのAPIサーバー実装を提供します。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stsysd/shapekit/collection"
	"github.com/stsysd/shapekit/config"
	"github.com/stsysd/shapekit/model"
	"github.com/stsysd/shapekit/render"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router     *http.ServeMux
	handler    http.Handler
	collection *collection.ShapeCollection
	config     *config.Config
	logger     logrus.FieldLogger
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSON はJSON形式でレスポンスを返却します。
func (s *Server) writeJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Error encoding response")
	}
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, ErrorResponse{Error: message, Code: statusCode}, statusCode)
}

// writeLookupError はコレクション参照時のエラーをレスポンスに変換します。
func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrShapeNotFound) {
		s.writeJSONError(w, "Shape not found", http.StatusNotFound)
		return
	}
	s.logger.WithError(err).Error("Error accessing collection")
	s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(coll *collection.ShapeCollection, cfg *config.Config, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		router:     http.NewServeMux(),
		collection: coll,
		config:     cfg,
		logger:     logger,
	}
	s.routes()
	s.handler = s.logMiddleware(s.router)
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックエンドポイントは認証不要
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	// すべての保護されたエンドポイントをまずセキュアなルータに登録
	securedHandler := http.NewServeMux()

	// Shape endpoints
	securedHandler.HandleFunc("GET /api/v0/shapes", s.handleListShapes)
	securedHandler.HandleFunc("POST /api/v0/shapes", s.handleCreateShape)
	securedHandler.HandleFunc("GET /api/v0/shapes/{index}", s.handleGetShape)
	securedHandler.HandleFunc("DELETE /api/v0/shapes/{index}", s.handleRemoveShape)
	securedHandler.HandleFunc("GET /api/v0/shapes/{index}/metrics", s.handleGetMetrics)
	securedHandler.HandleFunc("POST /api/v0/shapes/{index}/translate", s.handleTranslateShape)
	securedHandler.HandleFunc("POST /api/v0/shapes/{index}/scale", s.handleScaleShape)

	// Bulk endpoints
	securedHandler.HandleFunc("POST /api/v0/shapes/translate", s.handleTranslateAll)
	securedHandler.HandleFunc("POST /api/v0/shapes/scale", s.handleScaleAll)

	securedHandler.HandleFunc("GET /api/v0/display", s.handleDisplay)

	// 認証ミドルウェアを適用し、メインルータにマウント
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Canvas endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /canvas.svg", s.handleGetCanvas)
	s.router.HandleFunc("GET /canvas", s.handleGetCanvas)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// routesに設定されたルーティングを使用する
	s.handler.ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// decodeBody はリクエストボディをJSONとしてデコードします。
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewValidationError("request body is required")
		}
		return model.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// handleListShapes は全図形の一覧を返すハンドラーです。
func (s *Server) handleListShapes(w http.ResponseWriter, r *http.Request) {
	views := make([]ShapeView, 0)
	s.collection.Read(func(entries []collection.Entry) {
		for i, e := range entries {
			views = append(views, newShapeView(i, e))
		}
	})
	s.writeJSON(w, views, http.StatusOK)
}

// CreateShapeParams represents parameters for creating a shape.
type CreateShapeParams struct {
	Spec model.ShapeSpec
}

// NewCreateShapeParams creates parameters for shape creation from HTTP request.
func NewCreateShapeParams(r *http.Request) (*CreateShapeParams, error) {
	// Parse request body
	var requestBody struct {
		Kind     string        `json:"kind"`
		X        int           `json:"x"`
		Y        int           `json:"y"`
		Width    float64       `json:"width"`
		Length   float64       `json:"length"`
		Side     float64       `json:"side"`
		Radius   float64       `json:"radius"`
		Vertices []model.Point `json:"vertices"`
	}
	if err := decodeBody(r, &requestBody); err != nil {
		return nil, err
	}

	kind, err := model.ParseKind(requestBody.Kind)
	if err != nil {
		return nil, err
	}

	return &CreateShapeParams{
		Spec: model.ShapeSpec{
			Kind:     kind,
			X:        requestBody.X,
			Y:        requestBody.Y,
			Width:    requestBody.Width,
			Length:   requestBody.Length,
			Side:     requestBody.Side,
			Radius:   requestBody.Radius,
			Vertices: requestBody.Vertices,
		},
	}, nil
}

// handleCreateShape は図形作成エンドポイントのハンドラーです。
func (s *Server) handleCreateShape(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 図形の生成（不正な寸法は既定値に置き換えられる）
	shape, err := params.Spec.Build()
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// コレクションへの追加
	id, err := s.collection.Add(shape)
	if err != nil {
		s.logger.WithError(err).Error("Error adding shape")
		s.writeJSONError(w, "Failed to add shape", http.StatusServiceUnavailable)
		return
	}

	// 追加した図形のインデックスを探す
	var view *ShapeView
	s.collection.Read(func(entries []collection.Entry) {
		for i, e := range entries {
			if e.ID == id {
				v := newShapeView(i, e)
				view = &v
				return
			}
		}
	})
	if view == nil {
		// 直後に別のリクエストで削除された
		s.writeJSONError(w, "Shape not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, view, http.StatusCreated)
}

// ShapeParams represents parameters addressing a single shape.
type ShapeParams struct {
	Index *model.ShapeIndex
}

// NewShapeParams creates parameters for single-shape endpoints from HTTP request.
func NewShapeParams(r *http.Request) (*ShapeParams, error) {
	index, err := model.ParseShapeIndex(r.PathValue("index"))
	if err != nil {
		return nil, err
	}
	return &ShapeParams{Index: index}, nil
}

// writeShape は指定位置の図形をレスポンスとして返却します。
func (s *Server) writeShape(w http.ResponseWriter, index int) {
	var view ShapeView
	if err := s.collection.Inspect(index, func(e collection.Entry) {
		view = newShapeView(index, e)
	}); err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, view, http.StatusOK)
}

// handleGetShape は特定位置の図形を取得するハンドラーです。
func (s *Server) handleGetShape(w http.ResponseWriter, r *http.Request) {
	params, err := NewShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeShape(w, params.Index.Int())
}

// handleRemoveShape は特定位置の図形を削除し、削除した図形を返すハンドラーです。
func (s *Server) handleRemoveShape(w http.ResponseWriter, r *http.Request) {
	params, err := NewShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.collection.RemoveEntry(params.Index.Int())
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, newShapeView(params.Index.Int(), entry), http.StatusOK)
}

// MetricsResponse は面積と周長のレスポンスです。
type MetricsResponse struct {
	Index     int      `json:"index"`
	Area      *float64 `json:"area"`
	Perimeter *float64 `json:"perimeter"`
}

// handleGetMetrics は特定位置の図形の面積と周長を返すハンドラーです。
func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	params, err := NewShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	index := params.Index.Int()
	area := s.collection.Area(index)
	perimeter := s.collection.Perimeter(index)
	if area == collection.InvalidMetric || perimeter == collection.InvalidMetric {
		s.writeJSONError(w, "Shape not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, MetricsResponse{
		Index:     index,
		Area:      finite(area),
		Perimeter: finite(perimeter),
	}, http.StatusOK)
}

// TranslateParams represents parameters for translating shapes.
type TranslateParams struct {
	Offset *model.Offset
}

// NewTranslateParams creates translation parameters from HTTP request.
func NewTranslateParams(r *http.Request) (*TranslateParams, error) {
	var requestBody struct {
		DX *int `json:"dx"`
		DY *int `json:"dy"`
	}
	if err := decodeBody(r, &requestBody); err != nil {
		return nil, err
	}
	offset, err := model.NewOffset(requestBody.DX, requestBody.DY)
	if err != nil {
		return nil, err
	}
	return &TranslateParams{Offset: offset}, nil
}

// ScaleParams represents parameters for scaling shapes.
type ScaleParams struct {
	Factor *model.ScaleFactor
}

// NewScaleParams creates scaling parameters from HTTP request.
func NewScaleParams(r *http.Request) (*ScaleParams, error) {
	var requestBody struct {
		Factor   *int  `json:"factor"`
		Multiply *bool `json:"multiply"`
	}
	if err := decodeBody(r, &requestBody); err != nil {
		return nil, err
	}
	factor, err := model.NewScaleFactor(requestBody.Factor, requestBody.Multiply)
	if err != nil {
		return nil, err
	}
	return &ScaleParams{Factor: factor}, nil
}

// handleTranslateShape は特定位置の図形を移動するハンドラーです。
func (s *Server) handleTranslateShape(w http.ResponseWriter, r *http.Request) {
	shapeParams, err := NewShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := NewTranslateParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	index := shapeParams.Index.Int()
	if err := s.collection.Translate(index, params.Offset.DX(), params.Offset.DY()); err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeShape(w, index)
}

// handleScaleShape は特定位置の図形を拡縮するハンドラーです。
func (s *Server) handleScaleShape(w http.ResponseWriter, r *http.Request) {
	shapeParams, err := NewShapeParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := NewScaleParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	index := shapeParams.Index.Int()
	if err := s.collection.Scale(index, params.Factor.Int(), params.Factor.Multiply()); err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeShape(w, index)
}

// BulkResponse は一括操作のレスポンスです。
type BulkResponse struct {
	Count int `json:"count"`
}

// handleTranslateAll は全図形を移動するハンドラーです。
func (s *Server) handleTranslateAll(w http.ResponseWriter, r *http.Request) {
	params, err := NewTranslateParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.collection.TranslateAll(params.Offset.DX(), params.Offset.DY())
	s.writeJSON(w, BulkResponse{Count: s.collection.Len()}, http.StatusOK)
}

// handleScaleAll は全図形を拡縮するハンドラーです。
func (s *Server) handleScaleAll(w http.ResponseWriter, r *http.Request) {
	params, err := NewScaleParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.collection.ScaleAll(params.Factor.Int(), params.Factor.Multiply())
	s.writeJSON(w, BulkResponse{Count: s.collection.Len()}, http.StatusOK)
}

// handleDisplay はコレクションの説明文をテキストで返すハンドラーです。
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, s.collection.Display()); err != nil {
		s.logger.WithError(err).Error("Error writing display")
	}
}

// canvasOptions は設定からキャンバスの描画設定を生成します。
func (s *Server) canvasOptions() *render.Options {
	opts := render.DefaultOptions()
	if s.config == nil {
		return opts
	}
	c := s.config.Canvas
	if c.Padding > 0 {
		opts.Padding = c.Padding
	}
	if c.UnitSize > 0 {
		opts.UnitSize = c.UnitSize
	}
	if c.FontSize > 0 {
		opts.FontSize = c.FontSize
	}
	if c.FontFamily != "" {
		opts.FontFamily = c.FontFamily
	}
	opts.Title = c.Title
	return opts
}

// handleGetCanvas はコレクション全体をSVGで描画して返すハンドラーです。
func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	var svg string
	opts := s.canvasOptions()
	s.collection.Read(func(entries []collection.Entry) {
		shapes := make([]model.Shape, len(entries))
		for i, e := range entries {
			shapes[i] = e.Shape
		}
		svg = render.GenerateCanvasSVG(shapes, opts)
	})

	// SVGとしてレスポンスを返す
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := io.WriteString(w, svg); err != nil {
		s.logger.WithError(err).Error("Error writing canvas")
	}
}

// Run はサーバーを起動し、ctx がキャンセルされるとグレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
