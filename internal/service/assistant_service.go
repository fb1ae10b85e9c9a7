package service

import (
	"fmt"
	"strings"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
)

const (
	assistantChatContext = 10
	assistantHistoryLen  = 6
)

// AssistantService 团队 AI 助手。每次提问把团队的实时状态
// （成员、任务看板、最近群聊、仓库最近提交）拼进 system 提示词，
// 再带上该成员最近几轮 AI 对话作为多轮上下文。
type AssistantService struct {
	TeamRepo *repository.TeamRepository
	TaskRepo *repository.TaskRepository
	ChatRepo *repository.AIChatRepository
	AI       *AIService
	GitHub   *GitHubClient
}

func NewAssistantService(teamRepo *repository.TeamRepository, taskRepo *repository.TaskRepository, chatRepo *repository.AIChatRepository, ai *AIService, github *GitHubClient) *AssistantService {
	return &AssistantService{
		TeamRepo: teamRepo,
		TaskRepo: taskRepo,
		ChatRepo: chatRepo,
		AI:       ai,
		GitHub:   github,
	}
}

// Ask 成员向团队助手提问。提问与回复成对落库。
func (s *AssistantService) Ask(userID string, teamID uint, question string) (*model.TeamAIChat, error) {
	if isMember, err := s.TeamRepo.IsMember(teamID, userID); err != nil {
		return nil, err
	} else if !isMember {
		return nil, util.ErrNotTeamMember
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, util.ErrEmptyMessage
	}

	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.buildContext(team)
	if err != nil {
		return nil, err
	}

	history, err := s.recentHistory(teamID, userID)
	if err != nil {
		return nil, err
	}

	answer, err := s.AI.Chat(systemPrompt, history, question)
	if err != nil {
		return nil, err
	}

	q := &model.TeamAIChat{TeamID: teamID, UserID: userID, Content: question}
	a := &model.TeamAIChat{TeamID: teamID, UserID: userID, Content: answer, IsBot: true}
	if err := s.ChatRepo.CreatePair(q, a); err != nil {
		return nil, err
	}
	return a, nil
}

// History 该成员在该团队的完整 AI 对话历史
func (s *AssistantService) History(userID string, teamID uint) ([]model.TeamAIChat, error) {
	if isMember, err := s.TeamRepo.IsMember(teamID, userID); err != nil {
		return nil, err
	} else if !isMember {
		return nil, util.ErrNotTeamMember
	}
	return s.ChatRepo.GetHistory(teamID, userID)
}

// buildContext 组装 system 提示词：助手人设 + 团队名单 +
// 任务看板 + 最近群聊 + 仓库最近提交
func (s *AssistantService) buildContext(team *model.Team) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "你是团队「%s」的 AI 助手，帮助成员了解团队进展、任务分工和代码动态。回答要简洁，基于以下团队实时信息。\n\n", team.Name)
	if team.Description != "" {
		fmt.Fprintf(&b, "团队简介：%s\n\n", team.Description)
	}

	members, users, err := s.TeamRepo.GetMembersWithUser(team.ID)
	if err != nil {
		return "", err
	}
	userByID := make(map[string]*model.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	b.WriteString("团队成员：")
	names := make([]string, 0, len(members))
	for _, m := range members {
		if u, ok := userByID[m.UserID]; ok {
			name := util.FirstName(u.FullName)
			if m.Role == model.RoleLeader {
				name += "（队长）"
			}
			names = append(names, name)
		}
	}
	b.WriteString(strings.Join(names, "、"))
	b.WriteString("\n\n")

	tasks, err := s.TaskRepo.GetByTeam(team.ID)
	if err != nil {
		return "", err
	}
	if len(tasks) > 0 {
		b.WriteString("任务看板：\n")
		for _, t := range tasks {
			assignee := "未分配"
			if t.AssignedToID != nil {
				if u, ok := userByID[*t.AssignedToID]; ok {
					assignee = util.FirstName(u.FullName)
				}
			}
			fmt.Fprintf(&b, "- [%s] %s（负责人：%s，优先级：%s）\n", t.Status, t.Title, assignee, t.Priority)
		}
		b.WriteString("\n")
	}

	chats, err := s.TeamRepo.GetRecentMessages(team.ID, assistantChatContext)
	if err != nil {
		return "", err
	}
	if len(chats) > 0 {
		b.WriteString("最近群聊：\n")
		for _, c := range chats {
			fmt.Fprintf(&b, "- %s: %s\n", util.FirstName(c.Sender.FullName), c.Content)
		}
		b.WriteString("\n")
	}

	if commits := s.GitHub.RecentCommits(team.GithubRepo); len(commits) > 0 {
		fmt.Fprintf(&b, "仓库 %s 最近提交：\n", team.GithubRepo)
		for _, c := range commits {
			fmt.Fprintf(&b, "- %s（%s）\n", strings.SplitN(c.Message, "\n", 2)[0], c.Author)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// recentHistory 最近几轮 AI 对话，转成接口需要的消息格式
func (s *AssistantService) recentHistory(teamID uint, userID string) ([]AIChatMessage, error) {
	chats, err := s.ChatRepo.GetRecent(teamID, userID, assistantHistoryLen)
	if err != nil {
		return nil, err
	}
	history := make([]AIChatMessage, 0, len(chats))
	for _, c := range chats {
		role := "user"
		if c.IsBot {
			role = "assistant"
		}
		history = append(history, AIChatMessage{Role: role, Content: c.Content})
	}
	return history, nil
}
