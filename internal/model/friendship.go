package model

import "time"

// 好友申请状态
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Friendship 好友关系表。对称关系，始终成对存在两条有向边：
// A->B 存在则 B->A 必然存在，删除时在同一事务里删掉两个方向。
type Friendship struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	FriendID  string    `gorm:"primaryKey;type:varchar(36)" json:"friendId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// FriendRequest 好友申请表
type FriendRequest struct {
	BaseModel
	SenderID   string `gorm:"type:varchar(36);index;not null" json:"senderId"`
	Sender     User   `gorm:"foreignKey:SenderID;references:ID;constraint:false" json:"sender,omitempty"`
	ReceiverID string `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID;references:ID;constraint:false" json:"receiver,omitempty"`
	Status     string `gorm:"size:20;default:'pending'" json:"status"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
