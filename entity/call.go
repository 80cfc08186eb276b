/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"context"
	"fmt"

	"github.com/suparena/objectstore/errors"
)

// Method names accepted by Call.
const (
	MethodSave     = "save"
	MethodToRecord = "to_record"
	MethodString   = "string"
)

// Call invokes a no-argument entity method by name, as a command layer that
// parses "<Type>.<method>(<args>)" would. Any argument is rejected with an
// invalid argument error before the method runs.
func Call(ctx context.Context, e Entity, method string, args ...any) (any, error) {
	switch method {
	case MethodSave, MethodToRecord, MethodString:
	default:
		return nil, errors.NewInvalidArgumentError("method", fmt.Sprintf("unknown method %q", method))
	}
	if len(args) > 0 {
		return nil, errors.NewInvalidArgumentError("", fmt.Sprintf("%s() takes no arguments (%d given)", method, len(args)))
	}

	switch method {
	case MethodSave:
		return nil, e.Save(ctx)
	case MethodToRecord:
		return e.ToRecord(), nil
	default:
		return e.String(), nil
	}
}
