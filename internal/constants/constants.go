package constants

// 商品类型常量
const (
	ProductKindCap    = "Cap"
	ProductKindTshirt = "Tshirt"
)

// ProductKinds 全部商品类型
var ProductKinds = []string{ProductKindCap, ProductKindTshirt}

// T 恤性别常量
const (
	TshirtGenderMan    = "Man"
	TshirtGenderWoman  = "Woman"
	TshirtGenderUnisex = "Unisex"
)

// TshirtGenders 全部 T 恤性别
var TshirtGenders = []string{TshirtGenderMan, TshirtGenderWoman, TshirtGenderUnisex}

// TshirtMaterials T 恤成分材质白名单
var TshirtMaterials = []string{
	"cotton", "linen", "hemp",
	"polyester", "nylon", "wool",
	"silk",
}

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskOrderConfirmationEmail = "email:order_confirmation"
)
