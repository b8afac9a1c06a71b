package dto

// Envelope is embedded in every successful response.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

type ActivityItem struct {
	Type     string   `json:"type"`
	Activity string   `json:"activity,omitempty"`
	By       *UserRef `json:"by,omitempty"`
	Date     string   `json:"date"`
}

type DocumentItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

type SubtaskItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Tag            string         `json:"tag,omitempty"`
	Deadline       string         `json:"deadline"`
	CreatedAt      string         `json:"createdAt"`
	Priority       string         `json:"priority"`
	StoredPriority string         `json:"storedPriority"`
	Stage          string         `json:"stage"`
	EffectiveStage string         `json:"effectiveStage"`
	DaysRemaining  int            `json:"daysRemaining"`
	Members        []UserRef      `json:"members"`
	Activities     []ActivityItem `json:"activities"`
	IsTrashed      bool           `json:"isTrashed"`
}

type TrashedSubtaskItem struct {
	SubtaskItem
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
}

type TaskItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Stage          string         `json:"stage"`
	EffectiveStage string         `json:"effectiveStage"`
	Priority       string         `json:"priority"`
	DaysRemaining  int            `json:"daysRemaining"`
	IsLocked       bool           `json:"isLocked"`
	Deadline       string         `json:"deadline"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	IsTrashed      bool           `json:"isTrashed"`
	Team           []UserRef      `json:"team"`
	Subtasks       []SubtaskItem  `json:"subtasks"`
	Documents      []DocumentItem `json:"assets"`
	Activities     []ActivityItem `json:"activities"`
	Version        int64          `json:"version"`
}

type TaskResponse struct {
	Envelope
	Task TaskItem `json:"task"`
}

type TaskListResponse struct {
	Envelope
	Tasks           []TaskItem           `json:"tasks"`
	TrashedSubtasks []TrashedSubtaskItem `json:"trashedSubtasks"`
}

type TrashedSubtasksResponse struct {
	Envelope
	TrashedSubtasks []TrashedSubtaskItem `json:"trashedSubtasks"`
}

type SubtaskResponse struct {
	Envelope
	Subtask SubtaskItem `json:"subtask"`
}

type AutoAssignResponse struct {
	Envelope
	Assigned []string `json:"assigned"`
}

type AssignMissingResponse struct {
	Envelope
	Candidates []string            `json:"candidates"`
	Assigned   map[string][]string `json:"assigned"`
	Total      int                 `json:"total"`
}

type DocumentsResponse struct {
	Envelope
	Documents []DocumentItem `json:"assets"`
}

type PriorityCount struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type UserItem struct {
	UserRef
	IsAdmin   bool   `json:"isAdmin"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type DashboardResponse struct {
	Envelope
	TotalTasks int             `json:"totalTasks"`
	LastTasks  []TaskItem      `json:"last10Task"`
	ByStage    map[string]int  `json:"tasks"`
	ByPriority []PriorityCount `json:"graphData"`
	Users      []UserItem      `json:"users"`
}

type ReportResponse struct {
	Envelope
	Total int        `json:"total"`
	Tasks []TaskItem `json:"tasks"`
}

type CreateTaskRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Team     []string `json:"team" binding:"required,min=1,dive,required"`
	Stage    string   `json:"stage" binding:"required,max=32"`
	Deadline string   `json:"deadline" binding:"required"`
	Assets   []string `json:"assets"`
}

type UpdateTaskRequest struct {
	Title    *string  `json:"title" binding:"omitempty,max=255"`
	Team     []string `json:"team"`
	Stage    *string  `json:"stage"`
	Deadline *string  `json:"deadline"`
}

type CreateSubtaskRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Tag      string   `json:"tag" binding:"omitempty,max=64"`
	Deadline string   `json:"deadline" binding:"required"`
	Members  []string `json:"members"`
	Priority string   `json:"priority"`
}

type UpdateSubtaskRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=255"`
	Tag           *string  `json:"tag" binding:"omitempty,max=64"`
	Deadline      *string  `json:"deadline"`
	Members       []string `json:"members"`
	Priority      *string  `json:"priority"`
	PreviousStage *string  `json:"previousStage"`
}

type PostActivityRequest struct {
	Type      string `json:"type" binding:"required"`
	Activity  string `json:"activity" binding:"max=2000"`
	SubtaskID string `json:"subtaskId" binding:"required"`
}

type ListTasksQuery struct {
	Stage     string `form:"stage"`
	IsTrashed string `form:"isTrashed"`
	Search    string `form:"search"`
}

type ReportQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
