package flare

import "testing"

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want StackFrame
	}{
		{
			"full frame",
			"/app/models/user.go:42:in `save'",
			StackFrame{FileName: "/app/models/user.go", LineNumber: "42", MethodName: "save"},
		},
		{
			"no method segment",
			"/app/lib/foo.go:10",
			StackFrame{FileName: "/app/lib/foo.go", LineNumber: "10", MethodName: "(none)"},
		},
		{
			"non-numeric line marker",
			"template.tmpl:unknown:in `render'",
			StackFrame{FileName: "template.tmpl", LineNumber: "unknown", MethodName: "render"},
		},
		{
			"undecorated method segment",
			"/srv/worker.go:7:perform",
			StackFrame{FileName: "/srv/worker.go", LineNumber: "7", MethodName: "perform"},
		},
		{
			"file only",
			"boot.go",
			StackFrame{FileName: "boot.go", MethodName: "(none)"},
		},
		{
			"extra segments dropped",
			"/app/a.go:3:in `call':discarded",
			StackFrame{FileName: "/app/a.go", LineNumber: "3", MethodName: "call"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFrame(tt.raw)
			if got != tt.want {
				t.Errorf("ParseFrame(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseFrames_NilInput(t *testing.T) {
	frames := ParseFrames(nil)
	if frames == nil {
		t.Fatal("ParseFrames(nil) should return an empty trace, not nil")
	}
	if len(frames) != 0 {
		t.Errorf("ParseFrames(nil) has %d frames, want 0", len(frames))
	}
}

func TestParseFrames_KeepsOrder(t *testing.T) {
	frames := ParseFrames([]string{
		"/app/a.go:1:in `one'",
		"/app/b.go:2:in `two'",
	})

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].MethodName != "one" || frames[1].MethodName != "two" {
		t.Errorf("frame order not preserved: %+v", frames)
	}
}
