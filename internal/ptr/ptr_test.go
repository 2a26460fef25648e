package ptr_test

import (
	"testing"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/ptr"
)

func TestRef(t *testing.T) {
	t.Run("copies the value", func(t *testing.T) {
		days := 3
		p := ptr.Ref(days)
		days = 5
		if *p != 3 {
			t.Errorf("got %d, want 3", *p)
		}
	})

	t.Run("struct", func(t *testing.T) {
		type target struct {
			Calories float64
		}
		p := ptr.Ref(target{Calories: 2500})
		if p.Calories != 2500 {
			t.Errorf("got %+v", *p)
		}
	})
}

func TestDeref(t *testing.T) {
	if got := ptr.Deref[float64](nil, 42); got != 42 {
		t.Errorf("Deref(nil) = %v, want fallback 42", got)
	}
	if got := ptr.Deref(ptr.Ref("barbell"), ""); got != "barbell" {
		t.Errorf("Deref = %q, want barbell", got)
	}
}
