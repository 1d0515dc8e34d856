package gateway

import "testing"

func TestMatchRouteBindsCaptureSegments(t *testing.T) {
	patterns := []string{"/gifts", "/gifts/:id"}

	pattern, params, ok := matchRoute(patterns, "/gifts/abc")
	if !ok {
		t.Fatalf("expected a match")
	}
	if pattern != "/gifts/:id" {
		t.Fatalf("unexpected pattern: %s", pattern)
	}
	if params["id"] != "abc" {
		t.Fatalf("unexpected params: %#v", params)
	}
}

func TestMatchRouteRejectsSegmentCountMismatch(t *testing.T) {
	patterns := []string{"/gifts/:id"}

	if _, _, ok := matchRoute(patterns, "/gifts/abc/extra"); ok {
		t.Fatalf("expected no match for extra segment")
	}
	if _, _, ok := matchRoute(patterns, "/gifts"); ok {
		t.Fatalf("expected no match for missing segment")
	}
}

func TestMatchRouteRejectsTrailingSlash(t *testing.T) {
	patterns := []string{"/gifts"}

	if _, _, ok := matchRoute(patterns, "/gifts/"); ok {
		t.Fatalf("expected trailing slash not to match")
	}
}

func TestMatchRouteRejectsEmptyCaptureValue(t *testing.T) {
	patterns := []string{"/gifts/:id"}

	if _, _, ok := matchRoute(patterns, "/gifts/"); ok {
		t.Fatalf("expected empty capture segment not to match")
	}
}

func TestMatchRouteRejectsLiteralMismatch(t *testing.T) {
	patterns := []string{"/gifts/:id/edit"}

	if _, _, ok := matchRoute(patterns, "/gifts/abc/delete"); ok {
		t.Fatalf("expected literal segment mismatch not to match")
	}
}

func TestMatchRoutePrefersRegistrationOrder(t *testing.T) {
	patterns := []string{"/gifts/create", "/gifts/:id"}

	pattern, params, ok := matchRoute(patterns, "/gifts/create")
	if !ok {
		t.Fatalf("expected a match")
	}
	if pattern != "/gifts/create" {
		t.Fatalf("expected literal pattern to win, got %s", pattern)
	}
	if len(params) != 0 {
		t.Fatalf("expected no captures, got %#v", params)
	}

	pattern, params, ok = matchRoute(patterns, "/gifts/abc")
	if !ok || pattern != "/gifts/:id" || params["id"] != "abc" {
		t.Fatalf("expected capture fallback, got %s %#v", pattern, params)
	}
}

func TestMatchRouteBindsMultipleCaptures(t *testing.T) {
	patterns := []string{"/gifts/:id/reservations/:reservationId"}

	pattern, params, ok := matchRoute(patterns, "/gifts/g-1/reservations/r-9")
	if !ok {
		t.Fatalf("expected a match")
	}
	if pattern != "/gifts/:id/reservations/:reservationId" {
		t.Fatalf("unexpected pattern: %s", pattern)
	}
	if params["id"] != "g-1" || params["reservationId"] != "r-9" {
		t.Fatalf("unexpected params: %#v", params)
	}
}

func TestRouteTableRegistrationOrderIsStable(t *testing.T) {
	table := NewRouteTable()
	table.Register("GET", "/gifts/create", nil)
	table.Register("POST", "/gifts/create", nil)
	table.Register("GET", "/gifts/:id", nil)

	if len(table.patterns) != 2 {
		t.Fatalf("expected two patterns, got %#v", table.patterns)
	}
	if table.patterns[0] != "/gifts/create" || table.patterns[1] != "/gifts/:id" {
		t.Fatalf("unexpected pattern order: %#v", table.patterns)
	}
}
