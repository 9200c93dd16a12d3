package recognize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

func clusterOf(strokes ...*ink.Stroke) *ink.GlyphCluster {
	c := ink.NewGlyphCluster(strokes[0])
	for _, s := range strokes[1:] {
		c.Add(s)
	}
	return c
}

type stub struct {
	name string
	res  Result
	err  error
}

func (s stub) Name() string { return s.name }
func (s stub) Recognize(context.Context, *ink.GlyphCluster) (Result, error) {
	return s.res, s.err
}

func TestChainFallsThrough(t *testing.T) {
	ch := NewChain(
		stub{name: "down", err: ErrUnavailable},
		stub{name: "up", res: Result{Label: "5", Confidence: 0.9}},
	)
	c := clusterOf(ink.NewStroke([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}))
	res, err := ch.Recognize(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "5" || res.Confidence != 0.9 {
		t.Fatalf("res = %+v", res)
	}
}

func TestChainDegradesToUnknown(t *testing.T) {
	ch := NewChain(
		stub{name: "a", err: ErrUnavailable},
		stub{name: "b", err: errors.New("model missing")},
	)
	c := clusterOf(ink.NewStroke([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}))
	res, err := ch.Recognize(context.Background(), c)
	if err != nil {
		t.Fatalf("chain must not surface stage errors, got %v", err)
	}
	if res.Label != "?" || res.Confidence != 0 {
		t.Fatalf("res = %+v, want unknown", res)
	}
}

func TestRulesPlus(t *testing.T) {
	h := ink.NewStroke([]geom.Point{{X: 30, Y: 50, T: 0}, {X: 70, Y: 50, T: 80}})
	v := ink.NewStroke([]geom.Point{{X: 50, Y: 30, T: 200}, {X: 50, Y: 70, T: 280}})
	res, err := NewRules().Recognize(context.Background(), clusterOf(h, v))
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "+" {
		t.Fatalf("label = %q, want +", res.Label)
	}
}

func TestRulesEquals(t *testing.T) {
	top := ink.NewStroke([]geom.Point{{X: 10, Y: 40, T: 0}, {X: 50, Y: 41, T: 80}})
	bottom := ink.NewStroke([]geom.Point{{X: 11, Y: 58, T: 400}, {X: 51, Y: 59, T: 480}})
	res, err := NewRules().Recognize(context.Background(), clusterOf(top, bottom))
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "=" {
		t.Fatalf("label = %q, want =", res.Label)
	}
}

func TestRulesDashAndOne(t *testing.T) {
	dash := ink.NewStroke([]geom.Point{{X: 10, Y: 50, T: 0}, {X: 60, Y: 51, T: 80}})
	res, err := NewRules().Recognize(context.Background(), clusterOf(dash))
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "-" {
		t.Fatalf("label = %q, want -", res.Label)
	}

	bar := ink.NewStroke([]geom.Point{{X: 40, Y: 10, T: 0}, {X: 41, Y: 80, T: 80}})
	res, err = NewRules().Recognize(context.Background(), clusterOf(bar))
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "1" {
		t.Fatalf("label = %q, want 1", res.Label)
	}
}

func TestRulesMatchesEllipseAsZero(t *testing.T) {
	pts := ellipse(100, 100, 28, 42, 32)
	res, err := NewRules().Recognize(context.Background(), clusterOf(ink.NewStroke(pts)))
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "0" {
		t.Fatalf("label = %q, want 0", res.Label)
	}
}

func TestRemoteRecognize(t *testing.T) {
	var gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		var req remoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotImage = req.Image
		json.NewEncoder(w).Encode(remoteResponse{Expression: "7", Confidence: 0.91})
	}))
	defer srv.Close()

	r := NewRemote(srv.URL)
	if !r.Healthy(context.Background()) {
		t.Fatal("backend should report healthy")
	}

	c := clusterOf(ink.NewStroke([]geom.Point{{X: 0, Y: 0}, {X: 20, Y: 40}}))
	res, err := r.Recognize(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != "7" || res.Confidence != 0.91 {
		t.Fatalf("res = %+v", res)
	}
	if len(gotImage) == 0 || gotImage[:22] != "data:image/png;base64," {
		t.Fatalf("payload is not a png data url: %.30s", gotImage)
	}
}

func TestRemoteEmptyExpressionFallsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(remoteResponse{Expression: "", Confidence: 0})
	}))
	defer srv.Close()

	c := clusterOf(ink.NewStroke([]geom.Point{{X: 0, Y: 0}, {X: 20, Y: 40}}))
	_, err := NewRemote(srv.URL).Recognize(context.Background(), c)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestRasterizeBounds(t *testing.T) {
	c := clusterOf(ink.NewStroke([]geom.Point{{X: 100, Y: 100}, {X: 200, Y: 150}}))
	img := Rasterize(c)
	b := img.Bounds()
	if b.Dx() != rasterTarget+2*rasterMargin {
		t.Fatalf("width = %d", b.Dx())
	}
	// Some pixels must be ink, most must stay background.
	inked := 0
	for _, px := range img.Pix {
		if px == 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Fatal("no ink rendered")
	}
	if inked >= len(img.Pix)/2 {
		t.Fatal("image mostly ink; rendering is wrong")
	}
}
