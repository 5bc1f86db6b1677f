package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	err := errors.NotFoundf("dungeon run %s not found", "run_1")
	s.Equal("NOT_FOUND: dungeon run run_1 not found", err.Error())

	wrapped := errors.Wrap(stderrors.New("disk full"), "failed to persist run")
	s.Equal("INTERNAL: failed to persist run: disk full", wrapped.Error())
}

func (s *ErrorsTestSuite) TestConstructors() {
	testCases := []struct {
		name string
		err  *errors.Error
		code errors.Code
	}{
		{name: "not found", err: errors.NotFound("x"), code: errors.CodeNotFound},
		{name: "invalid argument", err: errors.InvalidArgumentf("choiceIndex %d", 2), code: errors.CodeInvalidArgument},
		{name: "already exists", err: errors.AlreadyExistsf("run %s", "r"), code: errors.CodeAlreadyExists},
		{name: "failed precondition", err: errors.FailedPrecondition("x"), code: errors.CodeFailedPrecondition},
		{name: "aborted", err: errors.Abortedf("version %d", 3), code: errors.CodeAborted},
		{name: "internal", err: errors.Internalf("room %d", 1), code: errors.CodeInternal},
		{name: "unavailable", err: errors.Unavailable("x"), code: errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.code, tc.err.Code)
			s.Equal(tc.code, errors.GetCode(tc.err))
			s.True(errors.HasCode(tc.err, tc.code))
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	base := errors.Aborted("stale version").WithMeta("current_version", int64(4))

	wrapped := errors.Wrapf(base, "failed to update run %s", "run_1")

	s.True(errors.IsAborted(wrapped))
	s.Equal("failed to update run run_1", wrapped.Message)
	s.Equal(int64(4), errors.GetMeta(wrapped)["current_version"])
	s.Same(base, stderrors.Unwrap(wrapped))

	// metadata is copied, not shared
	wrapped.WithMeta("run_id", "run_1")
	s.NotContains(base.Meta, "run_id")
}

func (s *ErrorsTestSuite) TestWrapUncodedIsInternal() {
	wrapped := errors.Wrap(fmt.Errorf("sql: connection reset"), "failed to load run")

	s.True(errors.IsInternal(wrapped))
	s.Nil(wrapped.Meta)
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCodef(errors.NotFound("no row"), errors.CodeUnavailable, "store %s", "down")

	s.True(errors.IsUnavailable(wrapped))
	s.Equal("store down", wrapped.Message)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "ignored"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeInternal, "ignored"))
}

func (s *ErrorsTestSuite) TestIsMatchesOnCode() {
	err := fmt.Errorf("handler: %w", errors.NotFound("dungeon run run_9 not found"))

	s.True(errors.Is(err, errors.NotFound("")))
	s.False(errors.Is(err, errors.Internal("")))
	s.True(errors.IsNotFound(err))
}

func (s *ErrorsTestSuite) TestHelpersOnNilAndPlainErrors() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.False(errors.IsInternal(nil))
	s.Nil(errors.GetMeta(nil))

	plain := stderrors.New("boom")
	s.Equal(errors.CodeInternal, errors.GetCode(plain))
	s.Nil(errors.GetMeta(plain))
}

func (s *ErrorsTestSuite) TestWithMetaMap() {
	err := errors.InvalidArgument("bad choice").
		WithMeta("available", 1).
		WithMetaMap(map[string]any{"run_id": "run_1"}).
		WithMetaMap(nil)

	s.Equal(map[string]any{"available": 1, "run_id": "run_1"}, err.Meta)
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code   errors.Code
		status int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeFailedPrecondition, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeAborted, http.StatusConflict},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.status, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestToHTTP() {
	status, body := errors.ToHTTP(errors.FailedPrecondition("dungeon run is completed").WithMeta("status", "completed"))
	s.Equal(http.StatusBadRequest, status)
	s.Equal(errors.CodeFailedPrecondition, body.Code)
	s.Equal("dungeon run is completed", body.Error)
	s.Equal("completed", body.Details["status"])
}

func (s *ErrorsTestSuite) TestToHTTPMasksInternal() {
	status, body := errors.ToHTTP(errors.Wrap(stderrors.New("database is locked"), "failed to update run"))
	s.Equal(http.StatusInternalServerError, status)
	s.Equal("internal server error", body.Error)
	s.Nil(body.Details)

	status, body = errors.ToHTTP(stderrors.New("plain"))
	s.Equal(http.StatusInternalServerError, status)
	s.Equal(errors.CodeInternal, body.Code)
}

func (s *ErrorsTestSuite) TestToHTTPNil() {
	status, body := errors.ToHTTP(nil)
	s.Equal(http.StatusOK, status)
	s.Equal(errors.CodeOK, body.Code)
}
