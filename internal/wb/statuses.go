package wb

// Статусы продавца у сборочных заданий FBS
const (
	StatusNew      = "new"
	StatusConfirm  = "confirm"
	StatusComplete = "complete"
	StatusCancel   = "cancel"
)

// Статусы из систем Wildberries и производные статусы по продажам
const (
	StatusDeliver          = "deliver"
	StatusShipped          = "shipped"
	StatusSorted           = "sorted"
	StatusReceive          = "receive"
	StatusReject           = "reject"
	StatusWaiting          = "waiting"
	StatusSold             = "sold"
	StatusCanceled         = "canceled"
	StatusCanceledByClient = "canceled_by_client"
	StatusDeclinedByClient = "declined_by_client"
	StatusDefect           = "defect"
	StatusReadyForPickup   = "ready_for_pickup"
)

// StatusError возвращается, когда статус заказа распознать не удалось
const StatusError = "ERROR"

// Статусы заказов на платформе
const (
	PlatformUnconfirmed = "unconfirmed"
	PlatformShipped     = "shipped"
	PlatformFulfilled   = "fulfilled"
	PlatformCanceled    = "canceled"
)

// Статусы заказа в модели платформы при сверке статусов
const (
	OrderNew               = "NEW"
	OrderAwaitingPackaging = "AWAITING_PACKAGING"
	OrderAwaitingDeliver   = "AWAITING_DELIVER"
	OrderShipped           = "SHIPPED"
	OrderDelivered         = "DELIVERED"
	OrderCanceled          = "CANCELED"
	OrderReturn            = "RETURN"
)

// PlatformStatusByMarketplace переводит статус заказа Wildberries в статус платформы
var PlatformStatusByMarketplace = map[string]string{
	StatusNew:              PlatformUnconfirmed,
	StatusConfirm:          PlatformUnconfirmed,
	StatusComplete:         PlatformUnconfirmed,
	StatusCancel:           PlatformCanceled,
	StatusDeliver:          PlatformFulfilled,
	StatusShipped:          PlatformShipped,
	StatusSorted:           PlatformShipped,
	StatusReceive:          PlatformFulfilled,
	StatusReject:           PlatformCanceled,
	StatusWaiting:          PlatformUnconfirmed,
	StatusSold:             PlatformFulfilled,
	StatusCanceled:         PlatformCanceled,
	StatusCanceledByClient: PlatformCanceled,
	StatusDeclinedByClient: PlatformCanceled,
	StatusDefect:           PlatformCanceled,
	StatusReadyForPickup:   PlatformShipped,
}

// OrderModelStatusByMarketplace переводит статус заказа Wildberries в
// статус модели заказа платформы при сверке статусов
var OrderModelStatusByMarketplace = map[string]string{
	StatusNew:              OrderNew,
	StatusConfirm:          OrderAwaitingPackaging,
	StatusComplete:         OrderAwaitingDeliver,
	StatusCancel:           OrderCanceled,
	StatusDeliver:          OrderShipped,
	StatusShipped:          OrderShipped,
	StatusReceive:          OrderDelivered,
	StatusReject:           OrderReturn,
	StatusWaiting:          OrderAwaitingPackaging,
	StatusSorted:           OrderAwaitingPackaging,
	StatusSold:             OrderDelivered,
	StatusCanceled:         OrderCanceled,
	StatusCanceledByClient: OrderCanceled,
	StatusDeclinedByClient: OrderCanceled,
	StatusDefect:           OrderCanceled,
	StatusReadyForPickup:   OrderShipped,
	PlatformFulfilled:      OrderDelivered,
	PlatformUnconfirmed:    OrderNew,
}
