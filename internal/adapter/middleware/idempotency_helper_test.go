package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// --- small helpers ---

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

// --- bodyHash ---

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	got := bodyHash(data)

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

// --- nowUTC ---

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

// --- buildKey ---

func Test_buildKey(t *testing.T) {
	got := buildKey("POST", "/listings/:asset_id/deposit", strings.Repeat("b", 40), "req-1")
	want := "idemp:escrow:post:/listings/:asset_id/deposit:" + strings.Repeat("b", 40) + ":req-1"
	if got != want {
		t.Fatalf("buildKey = %q, want %q", got, want)
	}
}

// --- validReqID ---

func Test_validReqID(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{strings.Repeat("a", 32), true},
		{"0f8fad5b-d9cb-469f-a165-70867728950e", true},
		{"NOT-AN-ID", false},
		{"", false},
		{strings.Repeat("a", 31), false},
	}
	for _, c := range cases {
		if got := validReqID(c.in); got != c.ok {
			t.Fatalf("validReqID(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

// --- parseAxRequestAt ---

func Test_parseAxRequestAt(t *testing.T) {
	// epoch seconds
	if got, err := parseAxRequestAt("1736123456"); err != nil || got.Unix() != 1736123456 {
		t.Fatalf("epoch s: got %v err %v", got, err)
	}
	// epoch ms
	if got, err := parseAxRequestAt("1736123456789"); err != nil || got.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch ms: got %v err %v", got, err)
	}
	// RFC3339 with zone
	if got, err := parseAxRequestAt("2025-09-05T10:00:00+07:00"); err != nil || got.UTC().Hour() != 3 {
		t.Fatalf("rfc3339: got %v err %v", got, err)
	}
	// naive local timestamp rejected
	if _, err := parseAxRequestAt("2025-09-05T10:00:00"); err == nil {
		t.Fatal("naive timestamp must be rejected")
	}
	if _, err := parseAxRequestAt(""); err == nil {
		t.Fatal("empty must be rejected")
	}
}

// --- redis helpers ---

func Test_provisionalSetAndLoad(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	entry := idempEntry{InProgress: true, RequestID: "r-1", CreatedAt: nowUTC()}

	ok, err := provisionalSet(ctx, rdb, "k", entry)
	if err != nil || !ok {
		t.Fatalf("first provisionalSet: ok=%v err=%v", ok, err)
	}
	// second set on the same key must lose
	ok, err = provisionalSet(ctx, rdb, "k", entry)
	if err != nil || ok {
		t.Fatalf("second provisionalSet: ok=%v err=%v", ok, err)
	}

	got, err := loadEntry(ctx, rdb, "k")
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if !got.InProgress || got.RequestID != "r-1" {
		t.Fatalf("loaded entry mismatch: %+v", got)
	}
}

func Test_saveFinalOverwritesLock(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	if _, err := provisionalSet(ctx, rdb, "k", idempEntry{InProgress: true}); err != nil {
		t.Fatalf("provisionalSet: %v", err)
	}
	final := idempEntry{InProgress: false, Code: 201, Body: []byte(`{"ok":true}`)}
	if err := saveFinal(ctx, rdb, "k", final, time.Minute); err != nil {
		t.Fatalf("saveFinal: %v", err)
	}

	got, err := loadEntry(ctx, rdb, "k")
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if got.InProgress || got.Code != 201 || len(got.Body) == 0 {
		t.Fatalf("final entry mismatch: %+v", got)
	}
}
