package mongo

import (
	"context"
	"strconv"
	"strings"

	"alcyxob/fitness-coach/internal/dberr"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case mongo.IsDuplicateKeyError(err):
		return dberr.Duplicate(duplicateIndex(err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return dberr.Network(err)
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == 13 || cmdErr.Code == 18 {
			return dberr.Unauthorized(cmdErr.Message)
		}
		return dberr.Store(strconv.Itoa(int(cmdErr.Code)), cmdErr.Message, cmdErr.Name, err)
	}
	return dberr.Unknown(err)
}

// duplicateIndex extracts the index name from an E11000 message.
func duplicateIndex(msg string) string {
	const marker = "index: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "key"
	}
	rest := msg[i+len(marker):]
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
