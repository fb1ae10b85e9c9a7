package service

import (
	"context"
	"testing"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeamService(t *testing.T, env *testEnv) *TeamService {
	t.Helper()
	return NewTeamService(env.teams, env.users, newTestStorage(t), env.notifier)
}

func createTeam(t *testing.T, svc *TeamService, creatorID, name, privacy string) *model.Team {
	t.Helper()
	team, err := svc.Create(context.Background(), creatorID, CreateTeamInput{
		Name:    name,
		Privacy: privacy,
	})
	require.NoError(t, err)
	return team
}

func TestCreateTeamMakesCreatorLeader(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")

	team := createTeam(t, svc, "alice", "算法小队", model.TeamPublic)

	m, err := env.teams.GetMember(team.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleLeader, m.Role)
}

func TestPrivateTeamVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	private := createTeam(t, svc, "alice", "私有队", model.TeamPrivate)
	createTeam(t, svc, "alice", "公开队", model.TeamPublic)

	// 公开列表里没有私有团队
	list, err := svc.ListPublic("bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "公开队", list[0].Name)

	// 非成员看不到私有团队详情
	_, err = svc.Detail("bob", private.ID)
	assert.ErrorIs(t, err, util.ErrPrivateTeam)

	// 成员可以看
	detail, err := svc.Detail("alice", private.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleLeader, detail.MyRole)
}

func TestJoinRequestFlow(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	team := createTeam(t, svc, "alice", "公开队", model.TeamPublic)

	require.NoError(t, svc.RequestJoin("bob", team.ID, "带我一个"))

	// 重复申请被拦截
	assert.ErrorIs(t, svc.RequestJoin("bob", team.ID, ""), util.ErrInvitePending)

	// 队长详情里能看到待处理申请
	detail, err := svc.Detail("alice", team.ID)
	require.NoError(t, err)
	require.Len(t, detail.JoinRequests, 1)

	// 非队长不能处理
	assert.ErrorIs(t, svc.RespondJoinRequest("bob", detail.JoinRequests[0].ID, true), util.ErrNotTeamLeader)

	require.NoError(t, svc.RespondJoinRequest("alice", detail.JoinRequests[0].ID, true))

	isMember, err := env.teams.IsMember(team.ID, "bob")
	require.NoError(t, err)
	assert.True(t, isMember)

	// 已是成员后再申请
	assert.ErrorIs(t, svc.RequestJoin("bob", team.ID, ""), util.ErrAlreadyMember)
}

func TestJoinRequestRejectedForPrivateTeam(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	private := createTeam(t, svc, "alice", "私有队", model.TeamPrivate)
	assert.ErrorIs(t, svc.RequestJoin("bob", private.ID, ""), util.ErrPrivateTeam)
}

func TestInviteFlow(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	team := createTeam(t, svc, "alice", "私有队", model.TeamPrivate)

	// 非队长不能邀请
	assert.ErrorIs(t, svc.Invite("bob", team.ID, "carol", ""), util.ErrNotTeamMember)

	require.NoError(t, svc.Invite("alice", team.ID, "bob", "来我们队"))
	assert.ErrorIs(t, svc.Invite("alice", team.ID, "bob", ""), util.ErrInvitePending)

	invites, err := svc.MyInvites("bob")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "私有队", invites[0].Team.Name)

	// 只有被邀请者可以处理
	assert.ErrorIs(t, svc.RespondInvite("carol", invites[0].ID, true), util.ErrPermissionDenied)

	require.NoError(t, svc.RespondInvite("bob", invites[0].ID, true))
	isMember, err := env.teams.IsMember(team.ID, "bob")
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestRemoveMemberRules(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	team := createTeam(t, svc, "alice", "小队", model.TeamPublic)
	require.NoError(t, svc.Invite("alice", team.ID, "bob", ""))
	invites, _ := svc.MyInvites("bob")
	require.NoError(t, svc.RespondInvite("bob", invites[0].ID, true))

	// 成员不能移除别人
	assert.ErrorIs(t, svc.RemoveMember("bob", team.ID, "alice"), util.ErrNotTeamLeader)
	// 队长不能移除自己
	assert.ErrorIs(t, svc.RemoveMember("alice", team.ID, "alice"), util.ErrRemoveSelf)

	require.NoError(t, svc.RemoveMember("alice", team.ID, "bob"))
	isMember, err := env.teams.IsMember(team.ID, "bob")
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestTeamChatMembersOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(t, env)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	team := createTeam(t, svc, "alice", "小队", model.TeamPublic)

	_, err := svc.SendChat("bob", team.ID, "你们好")
	assert.ErrorIs(t, err, util.ErrNotTeamMember)

	_, err = svc.SendChat("alice", team.ID, "  ")
	assert.ErrorIs(t, err, util.ErrEmptyMessage)

	_, err = svc.SendChat("alice", team.ID, "开工了")
	require.NoError(t, err)

	msgs, err := svc.ChatHistory("alice", team.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "开工了", msgs[0].Content)
	assert.True(t, msgs[0].IsMine)

	_, err = svc.ChatHistory("bob", team.ID)
	assert.ErrorIs(t, err, util.ErrNotTeamMember)
}

func TestTaskBoard(t *testing.T) {
	env := newTestEnv(t)
	teamSvc := newTeamService(t, env)
	taskSvc := NewTaskService(env.tasks, env.teams, env.notifier)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	team := createTeam(t, teamSvc, "alice", "小队", model.TeamPublic)
	require.NoError(t, teamSvc.Invite("alice", team.ID, "bob", ""))
	invites, _ := teamSvc.MyInvites("bob")
	require.NoError(t, teamSvc.RespondInvite("bob", invites[0].ID, true))

	// 非成员不能建任务
	_, err := taskSvc.Create("carol", CreateTaskInput{TeamID: team.ID, Title: "x"})
	assert.ErrorIs(t, err, util.ErrNotTeamMember)

	// 负责人必须是成员
	carolID := "carol"
	_, err = taskSvc.Create("alice", CreateTaskInput{TeamID: team.ID, Title: "x", AssignedToID: &carolID})
	assert.ErrorIs(t, err, util.ErrNotTeamMember)

	bobID := "bob"
	task, err := taskSvc.Create("alice", CreateTaskInput{
		TeamID:       team.ID,
		Title:        "写登录页",
		Priority:     "high",
		AssignedToID: &bobID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, task.Status)
	assert.Equal(t, "high", task.Priority)

	// 被分配人收到通知
	count, err := env.notifier.UnreadCount("bob")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// 状态流转
	inProgress := model.TaskInProgress
	updated, err := taskSvc.Update("bob", task.ID, UpdateTaskInput{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, updated.Status)

	bad := "shipped"
	_, err = taskSvc.Update("bob", task.ID, UpdateTaskInput{Status: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidTaskState)

	// 取消负责人
	empty := ""
	updated, err = taskSvc.Update("alice", task.ID, UpdateTaskInput{AssignedToID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedToID)

	require.NoError(t, taskSvc.Delete("alice", task.ID))
	_, err = taskSvc.Update("alice", task.ID, UpdateTaskInput{})
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}
