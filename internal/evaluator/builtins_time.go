package evaluator

import (
	"time"

	"github.com/google/uuid"
)

func (r *Registry) registerTime() {
	r.register("now", 0, false, builtinNow)
	r.register("nowMillis", 0, false, builtinNowMillis)
	r.register("timeDiff", 2, false, builtinTimeDiff)
	r.register("formatDate", 2, false, builtinFormatDate)
	r.register("uuid", 0, false, builtinUuid)
}

// now returns seconds since the Unix epoch.
func builtinNow(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("now", args, 0); err != nil {
		return nil, err
	}
	return &Number{Value: float64(time.Now().Unix())}, nil
}

func builtinNowMillis(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("nowMillis", args, 0); err != nil {
		return nil, err
	}
	return &Number{Value: float64(time.Now().UnixMilli())}, nil
}

func builtinTimeDiff(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("timeDiff", args, 2); err != nil {
		return nil, err
	}
	a, err := argNumber("timeDiff", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argNumber("timeDiff", args, 1)
	if err != nil {
		return nil, err
	}
	return &Number{Value: b - a}, nil
}

// formatDate renders a Unix-seconds timestamp with a Go reference
// layout string.
func builtinFormatDate(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("formatDate", args, 2); err != nil {
		return nil, err
	}
	ts, err := argNumber("formatDate", args, 0)
	if err != nil {
		return nil, err
	}
	layout, err := argString("formatDate", args, 1)
	if err != nil {
		return nil, err
	}
	return &String{Value: time.Unix(int64(ts), 0).UTC().Format(layout)}, nil
}

func builtinUuid(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("uuid", args, 0); err != nil {
		return nil, err
	}
	return &String{Value: uuid.NewString()}, nil
}
