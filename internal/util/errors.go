package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSelfRequest       = errors.New("不能添加自己为好友")
	ErrAlreadyFriends    = errors.New("已经是好友了")
	ErrRequestPending    = errors.New("申请已发送，等待对方处理")
	ErrRequestRejected   = errors.New("对方已拒绝过你的申请")
	ErrReversePending    = errors.New("对方已经给你发过申请，请到收件箱处理")
	ErrRequestNotFound   = errors.New("申请不存在")
	ErrRequestHandled    = errors.New("申请已处理")
	ErrNotFriends        = errors.New("不在你的好友列表中")
	ErrTeamNotFound      = errors.New("团队不存在")
	ErrPrivateTeam       = errors.New("私有团队，仅成员可见")
	ErrNotTeamMember     = errors.New("不是团队成员")
	ErrNotTeamLeader     = errors.New("仅队长可执行此操作")
	ErrAlreadyMember     = errors.New("已经是团队成员")
	ErrInvitePending     = errors.New("申请已在等待处理")
	ErrRemoveSelf        = errors.New("队长不能移除自己")
	ErrTaskNotFound      = errors.New("任务不存在")
	ErrInvalidTaskState  = errors.New("非法的任务状态")
	ErrHelpOpenExists    = errors.New("已有进行中的求助，请先解决或关闭")
	ErrHelpNotFound      = errors.New("求助不存在")
	ErrHelpClosed        = errors.New("该求助已关闭")
	ErrSolveOwnRequest   = errors.New("不能解答自己的求助")
	ErrAlreadySolved     = errors.New("该求助已被解决")
	ErrSolutionNotFound  = errors.New("解答不存在")
	ErrImageRequired     = errors.New("必须上传报错截图")
	ErrInvalidImageType  = errors.New("图片格式仅支持 png/jpg/jpeg/webp")
	ErrInvalidFileType   = errors.New("文件格式仅支持 png/jpg/jpeg/pdf/doc/docx")
	ErrOnlyFriendChat    = errors.New("只能与好友私信")
	ErrEmptyMessage      = errors.New("消息内容或附件不能为空")
	ErrNotificationOwner = errors.New("无权操作该通知")
	ErrNotificationGone  = errors.New("通知不存在")
)
