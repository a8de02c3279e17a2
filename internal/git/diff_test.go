package git

import "testing"

const samplePatch = `diff --git a/config.sh b/config.sh
index 1234567..89abcde 100644
--- a/config.sh
+++ b/config.sh
@@ -1,4 +1,5 @@ setup
 export FOO=1
-export BAR=2
+export BAR=3
+export BAZ=4
 export QUX=5
@@ -10,2 +11,2 @@
 alias ll='ls -l'
-alias gs='git status'
+alias gs='git status -sb'
`

func TestParseHunks(t *testing.T) {
	hunks := ParseHunks(samplePatch)
	if len(hunks) != 2 {
		t.Fatalf("parsed %d hunks, want 2", len(hunks))
	}

	h := hunks[0]
	if h.OldStart != 1 || h.OldCount != 4 || h.NewStart != 1 || h.NewCount != 5 {
		t.Errorf("hunk ranges = -%d,%d +%d,%d, want -1,4 +1,5",
			h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
	if h.Header != "@@ -1,4 +1,5 @@ setup" {
		t.Errorf("Header = %q", h.Header)
	}
	if len(h.Lines) != 5 {
		t.Fatalf("hunk has %d lines, want 5", len(h.Lines))
	}

	wantOrigins := []LineOrigin{LineContext, LineRemoved, LineAdded, LineAdded, LineContext}
	for i, want := range wantOrigins {
		if h.Lines[i].Origin != want {
			t.Errorf("line %d origin = %v, want %v", i, h.Lines[i].Origin, want)
		}
	}

	// Line numbering: removed lines advance only the old counter, added
	// lines only the new one.
	if l := h.Lines[1]; l.OldNum != 2 || l.NewNum != 0 {
		t.Errorf("removed line nums = old %d new %d, want old 2 new 0", l.OldNum, l.NewNum)
	}
	if l := h.Lines[2]; l.OldNum != 0 || l.NewNum != 2 {
		t.Errorf("added line nums = old %d new %d, want old 0 new 2", l.OldNum, l.NewNum)
	}
	if l := h.Lines[4]; l.OldNum != 3 || l.NewNum != 4 {
		t.Errorf("trailing context nums = old %d new %d, want old 3 new 4", l.OldNum, l.NewNum)
	}

	if hunks[1].OldStart != 10 || hunks[1].NewStart != 11 {
		t.Errorf("second hunk starts = -%d +%d, want -10 +11", hunks[1].OldStart, hunks[1].NewStart)
	}
}

func TestParseHunksEmptyDiff(t *testing.T) {
	if hunks := ParseHunks(""); hunks != nil {
		t.Errorf("ParseHunks(\"\") = %v, want nil", hunks)
	}
	if hunks := ParseHunks("\n\n"); hunks != nil {
		t.Errorf("ParseHunks(whitespace) = %v, want nil", hunks)
	}
}

func TestParseHunksOmittedCounts(t *testing.T) {
	patch := "@@ -3 +3 @@\n-old\n+new\n"
	hunks := ParseHunks(patch)
	if len(hunks) != 1 {
		t.Fatalf("parsed %d hunks, want 1", len(hunks))
	}
	h := hunks[0]
	if h.OldCount != 1 || h.NewCount != 1 {
		t.Errorf("omitted counts = %d,%d, want 1,1", h.OldCount, h.NewCount)
	}
}

func TestParseHunksNoNewlineMarker(t *testing.T) {
	patch := "@@ -1 +1 @@\n-old\n\\ No newline at end of file\n+new\n"
	hunks := ParseHunks(patch)
	if len(hunks) != 1 {
		t.Fatalf("parsed %d hunks, want 1", len(hunks))
	}
	if len(hunks[0].Lines) != 2 {
		t.Errorf("hunk has %d lines, want 2 (marker skipped)", len(hunks[0].Lines))
	}
}

func TestParseHunksMultiFilePatch(t *testing.T) {
	patch := "diff --git a/a b/a\n--- a/a\n+++ b/a\n@@ -1 +1 @@\n-x\n+y\n" +
		"diff --git a/b b/b\n--- a/b\n+++ b/b\n@@ -1 +1 @@\n-p\n+q\n"
	hunks := ParseHunks(patch)
	if len(hunks) != 2 {
		t.Fatalf("parsed %d hunks across two files, want 2", len(hunks))
	}
}
