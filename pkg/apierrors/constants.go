package apierrors

const (
	MsgUnauthorized       = "unauthorized"
	MsgInvalidAuthPayload = "invalidAuthPayload"
	MsgInvalidCredentials = "invalidCredentials"
	MsgEmailTaken         = "emailTaken"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgFailCurrentUser    = "failCurrentUser"

	MsgInvalidTaskPayload   = "invalidTaskPayload"
	MsgInvalidTaskStatus    = "invalidTaskStatus"
	MsgTaskNotFound         = "taskNotFound"
	MsgTaskForbidden        = "taskForbidden"
	MsgReminderAfterDueDate = "reminderAfterDueDate"
	MsgFailListTask         = "errorListTask"
	MsgFailGetTask          = "failGetTask"
	MsgFailCreateTask       = "failCreateTask"
	MsgFailUpdateTask       = "failUpdateTask"
	MsgFailDeleteTask       = "failDeleteTask"
	MsgFailTaskStats        = "failTaskStats"
	MsgFailUpcomingTasks    = "failUpcomingTasks"

	MsgInvalidCategoryPayload = "invalidCategoryPayload"
	MsgCategoryNotFound       = "categoryNotFound"
	MsgCategoryForbidden      = "categoryForbidden"
	MsgCategoryNameTaken      = "categoryNameTaken"
	MsgFailListCategories     = "failListCategories"
	MsgFailGetCategory        = "failGetCategory"
	MsgFailCreateCategory     = "failCreateCategory"
	MsgFailUpdateCategory     = "failUpdateCategory"
	MsgFailDeleteCategory     = "failDeleteCategory"
)
