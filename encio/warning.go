package encio

import "go.uber.org/zap"

// Warnings is where warnings are sent to.
// In some cases the serializer will continue to operate with questionable input, e.g. strings that are not valid UTF-8 when
// that is explicitly tolerated, however I don't want to silently put up with things that seem worrying.
//
// It discards everything by default. Replace it before use; it is not safe to swap while coding is in progress.
var Warnings = zap.NewNop()
