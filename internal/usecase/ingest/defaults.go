package ingest

import "github.com/kailas-cloud/helixrag/internal/domain"

// DefaultDocuments is the built-in customer support corpus used when Seed is
// called without documents. Sources are stable file names so chunk ids stay
// deterministic across reseeds.
var DefaultDocuments = []domain.Document{
	{
		Source: "return_policy.md",
		Text: "Return Policy. Items can be returned within 30 days of delivery for a full refund. " +
			"Products must be unused, in original packaging, and accompanied by the order number. " +
			"Refunds are issued to the original payment method within 5 business days after the " +
			"returned item passes inspection. Final-sale items and gift cards are not eligible for return. " +
			"Exchanges for a different size or color follow the same 30-day window.",
	},
	{
		Source: "return_policy_zh.md",
		Text: "退货政策。商品签收后30天内可申请退货并获得全额退款。退货商品须未经使用、保留原包装，并附上订单号。" +
			"退款将在退货商品通过检验后的5个工作日内原路退回。特价清仓商品和礼品卡不支持退货。" +
			"更换尺码或颜色的退换同样适用30天期限。",
	},
	{
		Source: "shipping_policy.md",
		Text: "Shipping Policy. Standard shipping takes 5-7 business days and is free for orders over $50. " +
			"Express shipping takes 2-3 business days for a flat fee of $9.99. " +
			"Orders placed before 2 PM local warehouse time ship the same day. " +
			"A tracking number is emailed once the parcel leaves the warehouse. " +
			"We currently do not ship to P.O. boxes.",
	},
	{
		Source: "shipping_policy_zh.md",
		Text: "配送政策。标准配送需5-7个工作日，订单满50美元免运费。加急配送需2-3个工作日，运费固定为9.99美元。" +
			"仓库当地时间下午2点前下的订单当天发货。包裹出库后会通过邮件发送物流单号。目前不支持邮政信箱地址配送。",
	},
	{
		Source: "sizing_guide.md",
		Text: "Sizing Guide. Our shoes run true to size for most customers. " +
			"If you are between sizes, we recommend going up half a size. " +
			"EU sizes 36-46 are stocked for all models; half sizes are available from EU 38 to EU 44. " +
			"Width fittings come in standard and wide. " +
			"Measure your foot length in the evening for the most accurate result.",
	},
	{
		Source: "warranty_faq.md",
		Text: "Warranty FAQ. All footwear carries a 12-month warranty against manufacturing defects such as " +
			"sole separation or stitching failure. Normal wear, improper care, and accidental damage are not covered. " +
			"To file a claim, contact support with photos of the defect and your order number. " +
			"Approved claims receive a replacement pair or store credit.",
	},
}
