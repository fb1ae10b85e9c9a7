package controller

import (
	"errors"
	"net/http"

	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError 把业务错误映射为 HTTP 状态码，
// 未识别的错误统一按 500 处理并记日志
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrRequestNotFound),
		errors.Is(err, util.ErrTeamNotFound),
		errors.Is(err, util.ErrTaskNotFound),
		errors.Is(err, util.ErrHelpNotFound),
		errors.Is(err, util.ErrSolutionNotFound),
		errors.Is(err, util.ErrNotificationGone):
		util.NotFound(ctx, err.Error())

	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrPrivateTeam),
		errors.Is(err, util.ErrNotTeamMember),
		errors.Is(err, util.ErrNotTeamLeader),
		errors.Is(err, util.ErrOnlyFriendChat),
		errors.Is(err, util.ErrNotificationOwner),
		errors.Is(err, util.ErrHelpOpenExists),
		errors.Is(err, util.ErrSolveOwnRequest):
		util.Forbidden(ctx, err.Error())

	case errors.Is(err, util.ErrSelfRequest),
		errors.Is(err, util.ErrAlreadyFriends),
		errors.Is(err, util.ErrRequestPending),
		errors.Is(err, util.ErrRequestRejected),
		errors.Is(err, util.ErrReversePending),
		errors.Is(err, util.ErrRequestHandled),
		errors.Is(err, util.ErrNotFriends),
		errors.Is(err, util.ErrAlreadyMember),
		errors.Is(err, util.ErrInvitePending),
		errors.Is(err, util.ErrRemoveSelf),
		errors.Is(err, util.ErrHelpClosed),
		errors.Is(err, util.ErrAlreadySolved),
		errors.Is(err, util.ErrImageRequired),
		errors.Is(err, util.ErrInvalidImageType),
		errors.Is(err, util.ErrInvalidFileType),
		errors.Is(err, util.ErrEmptyMessage),
		errors.Is(err, util.ErrInvalidTaskState):
		util.Error(ctx, http.StatusBadRequest, err.Error())

	default:
		util.LogInternalError(ctx, err)
	}
}
