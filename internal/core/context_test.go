package core

import (
	"testing"
	"time"
)

func TestAdvanceClampsDelta(t *testing.T) {
	ctx := NewContext(Env{})
	ctx.Advance(50 * time.Millisecond)
	if dt := ctx.DT(); dt < 0.0499 || dt > 0.0501 {
		t.Fatalf("dt = %v, want 0.05", dt)
	}
	ctx.Advance(5 * time.Second)
	if ctx.DT() != DefaultMaxDT {
		t.Fatalf("stalled frame dt = %v, want clamp %v", ctx.DT(), DefaultMaxDT)
	}
	ctx.Advance(time.Second)
	if ctx.DT() != 0 {
		t.Fatalf("backwards clock dt = %v, want 0", ctx.DT())
	}
	if ctx.Frame() != 3 {
		t.Fatalf("frame = %d, want 3", ctx.Frame())
	}
}

func TestPendingDropSlot(t *testing.T) {
	ctx := NewContext(Env{})
	if _, ok := ctx.TakeDrop(); ok {
		t.Fatal("empty slot reported a drop")
	}
	ctx.PostDrop(1, 2)
	ctx.PostDrop(3, 4)
	p, ok := ctx.TakeDrop()
	if !ok || p != (Point{X: 3, Y: 4}) {
		t.Fatalf("TakeDrop = %v, %v; want the latest post", p, ok)
	}
	if _, ok := ctx.TakeDrop(); ok {
		t.Fatal("a drop must be consumed exactly once")
	}
}

func TestPreviewDue(t *testing.T) {
	ctx := NewContext(Env{Preview: true})
	ctx.Advance(time.Second)
	if ctx.PreviewDue() {
		t.Fatal("preview drop due too early")
	}
	ctx.Advance(2001 * time.Millisecond)
	if !ctx.PreviewDue() {
		t.Fatal("preview drop should be due after two seconds")
	}
	if ctx.PreviewDue() {
		t.Fatal("preview timer should restart after firing")
	}
	ctx.Advance(4100 * time.Millisecond)
	if !ctx.PreviewDue() {
		t.Fatal("second preview drop should be due")
	}

	off := NewContext(Env{})
	off.Advance(10 * time.Second)
	if off.PreviewDue() {
		t.Fatal("preview drops only happen in preview mode")
	}
}

func TestScreenToGrid(t *testing.T) {
	ctx := NewContext(Env{ViewW: 480, ViewH: 800, Grid: Size{W: 50, H: 82}})
	p := ctx.ScreenToGrid(240, 400)
	if p != (Point{X: 25, Y: 41}) {
		t.Fatalf("centre maps to %v", p)
	}
	p = ctx.ScreenToGrid(479, 0)
	if p.X != 49 || p.Y != 0 {
		t.Fatalf("top-right maps to %v", p)
	}
}

func TestGLSize(t *testing.T) {
	w, h := Env{ViewW: 400, ViewH: 600}.GLSize()
	if w != 2 || h != 3 {
		t.Fatalf("GLSize = %v, %v; want 2, 3", w, h)
	}
}

func TestFixedStepTicks(t *testing.T) {
	fs := NewFixedStep(50)
	if fs.Step() != 20*time.Millisecond {
		t.Fatalf("step = %v", fs.Step())
	}
	fs.Tick()
	if got := fs.Tick(); got != 40*time.Millisecond {
		t.Fatalf("elapsed after two ticks = %v", got)
	}
	if NewFixedStep(0).Step() != time.Second/60 {
		t.Fatal("non-positive tps should fall back to 60")
	}
}
