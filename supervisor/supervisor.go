// Package supervisor owns the server process for the life of the container:
// it spawns the child, translates host termination signals into a graceful
// shutdown of that one child, and blocks until the child is reaped,
// propagating its exit status. The child is never restarted — one child
// lifetime per container lifetime.
package supervisor

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Grupo-MACC/entrypoint/errors"
	"github.com/Grupo-MACC/entrypoint/logger"
)

// State is the child process lifecycle state.
type State int32

const (
	// StateStarting is the initial state, before the child spawns.
	StateStarting State = iota
	// StateRunning means the child has a PID and has not exited.
	StateRunning
	// StateTerminating means a termination signal was forwarded and the
	// supervisor is waiting for the child to be reaped.
	StateTerminating
	// StateExited means the child has been reaped.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

const defaultGracePeriod = 10 * time.Second

// Supervisor runs a single child process to completion.
type Supervisor struct {
	binary string
	args   []string

	childEnv    []string
	gracePeriod time.Duration
	log         *logger.Logger

	state atomic.Int32
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithChildEnv appends key=value entries to the child's environment on top
// of the inherited one.
func WithChildEnv(kv ...string) Option {
	return func(s *Supervisor) { s.childEnv = append(s.childEnv, kv...) }
}

// WithGracePeriod sets how long to wait after forwarding a termination
// signal before killing the child's process group.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.gracePeriod = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Supervisor) { s.log = l }
}

// New creates a Supervisor for one invocation of binary with args.
func New(binary string, args []string, opts ...Option) *Supervisor {
	s := &Supervisor{
		binary:      binary,
		args:        args,
		gracePeriod: defaultGracePeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.GetGlobalLogger()
	}
	s.log = s.log.WithComponent("supervisor")
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) setState(st State) {
	s.state.Store(int32(st))
}

// Run spawns the child and blocks until it exits, returning the process
// exit code the entrypoint should terminate with. Exactly one of two
// terminal triggers decides the code: a forwarded termination signal (clean
// shutdown, code 0 once the child is reaped) or the child's own exit
// (its code propagated unchanged). Canceling ctx is equivalent to
// receiving SIGTERM.
func (s *Supervisor) Run(ctx context.Context) (int, error) {
	cmd := exec.Command(s.binary, s.args...) //nolint:gosec // launching the configured server is the point
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), s.childEnv...)
	// Own process group so grace-period escalation can kill the whole tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Handlers are installed before the spawn so a signal racing container
	// start is not lost.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	s.setState(StateStarting)
	if err := cmd.Start(); err != nil {
		s.setState(StateExited)
		serr := errors.ChildStartFailed(s.binary, err)
		return serr.ExitCode, serr
	}

	pid := cmd.Process.Pid
	s.setState(StateRunning)
	s.log.Info("server process started", map[string]interface{}{
		logger.FieldPID: pid,
	})

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	ctxDone := ctx.Done()
	var graceCh <-chan time.Time
	terminating := false

	for {
		select {
		case sig := <-sigCh:
			s.log.Info("forwarding termination signal", map[string]interface{}{
				logger.FieldSignal: sig.String(),
				logger.FieldPID:    pid,
			})
			// Repeat signals are re-forwarded; that is harmless.
			if !terminating {
				terminating = true
				s.setState(StateTerminating)
				graceCh = time.After(s.gracePeriod)
			}
			_ = cmd.Process.Signal(sig)

		case <-ctxDone:
			ctxDone = nil
			s.log.Info("context canceled, terminating server process", map[string]interface{}{
				logger.FieldPID: pid,
			})
			if !terminating {
				terminating = true
				s.setState(StateTerminating)
				graceCh = time.After(s.gracePeriod)
			}
			_ = cmd.Process.Signal(syscall.SIGTERM)

		case <-graceCh:
			graceCh = nil
			s.log.Warn("grace period expired, killing process group", map[string]interface{}{
				logger.FieldPID: pid,
			})
			_ = syscall.Kill(-pid, syscall.SIGKILL)

		case err := <-waitCh:
			s.setState(StateExited)
			return s.report(cmd, terminating, err)
		}
	}
}

// report translates the reaped child's status into the entrypoint's exit
// code. Signal-initiated shutdown is clean; a self-exit propagates the
// child's code unchanged.
func (s *Supervisor) report(cmd *exec.Cmd, terminating bool, waitErr error) (int, error) {
	state := cmd.ProcessState
	code := state.ExitCode()

	if waitErr == nil {
		s.log.Info("server process exited cleanly", map[string]interface{}{
			logger.FieldExitCode: 0,
		})
		return errors.ExitOK, nil
	}

	ws, ok := state.Sys().(syscall.WaitStatus)
	signaled := ok && ws.Signaled()

	if terminating {
		// The child died from the forwarded signal (or exited 0 while
		// shutting down): clean shutdown. A genuine non-zero self-exit
		// during termination still propagates.
		if signaled || code == 0 {
			s.log.Info("server process shut down after signal")
			return errors.ExitOK, nil
		}
		cerr := errors.ChildCrashed(code)
		s.log.WithError(cerr).Error("server process failed during shutdown")
		return code, cerr
	}

	if signaled {
		// Killed by a signal the supervisor never sent. Report the
		// conventional 128+signal code.
		code = 128 + int(ws.Signal())
	}
	cerr := errors.ChildCrashed(code)
	s.log.WithError(cerr).Error("server process crashed", map[string]interface{}{
		logger.FieldExitCode: code,
	})
	return code, cerr
}
