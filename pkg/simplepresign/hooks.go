package simplepresign

import "log/slog"

// HookContext carries shared state across the hooks of a single signing
// operation. Setting StopChain skips the remaining hooks of the current
// phase without failing the operation.
type HookContext struct {
	Metadata  map[string]interface{}
	StopChain bool
}

// NewHookContext creates a hook context with initialized metadata.
func NewHookContext() *HookContext {
	return &HookContext{Metadata: make(map[string]interface{})}
}

// BeforeSignHook runs after input validation and before any cryptographic
// work. Returning an error vetoes the operation.
type BeforeSignHook func(hctx *HookContext, req SignRequest) error

// AfterSignHook observes a finished signing operation. Returning an error
// fails the operation even though a URL was produced.
type AfterSignHook func(hctx *HookContext, req SignRequest, result *PresignedURL) error

// ErrorHook observes a failed signing operation. Hooks cannot alter the
// error; op names the operation that failed.
type ErrorHook func(hctx *HookContext, op string, err error)

// Hooks extends a Signer without modifying its core. Hooks run synchronously
// on the signing goroutine and must not block.
type Hooks struct {
	BeforeSign []BeforeSignHook
	AfterSign  []AfterSignHook
	OnError    []ErrorHook
}

func (h *Hooks) executeBeforeSign(req SignRequest) error {
	if h == nil || len(h.BeforeSign) == 0 {
		return nil
	}
	hctx := NewHookContext()
	for _, hook := range h.BeforeSign {
		if err := hook(hctx, req); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterSign(req SignRequest, result *PresignedURL) error {
	if h == nil || len(h.AfterSign) == 0 {
		return nil
	}
	hctx := NewHookContext()
	for _, hook := range h.AfterSign {
		if err := hook(hctx, req, result); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeOnError(op string, err error) {
	if h == nil || len(h.OnError) == 0 {
		return
	}
	hctx := NewHookContext()
	for _, hook := range h.OnError {
		hook(hctx, op, err)
		if hctx.StopChain {
			break
		}
	}
}

// LoggingHooks returns hooks that record every signing outcome on logger.
// The signed URL itself is never logged, only its addressing fields.
func LoggingHooks(logger *slog.Logger) *Hooks {
	return &Hooks{
		AfterSign: []AfterSignHook{
			func(hctx *HookContext, req SignRequest, result *PresignedURL) error {
				logger.Info("presigned url created",
					"bucket", req.Bucket,
					"object_key", req.ObjectKey,
					"expires_at", result.ExpiresAt)
				return nil
			},
		},
		OnError: []ErrorHook{
			func(hctx *HookContext, op string, err error) {
				logger.Error("presign failed", "operation", op, "error", err)
			},
		},
	}
}
