package locale

// Reason codes reported by the validator.
const (
	ReasonRequired          = "required"
	ReasonInvalidCharacters = "invalid_characters"
	ReasonTooShort          = "too_short"
	ReasonTooLong           = "too_long"
	ReasonOutOfRange        = "out_of_range"
	ReasonInvalidPrice      = "invalid_price"
	ReasonInvalidGroupSize  = "invalid_group_size"
	ReasonInvalidImageType  = "invalid_image_type"
	ReasonImageTooLarge     = "image_too_large"
	ReasonInvalidImage      = "invalid_image"
	ReasonNotContiguous     = "order_not_contiguous"
	ReasonForeignSubDest    = "sub_destination_mismatch"
	ReasonInvalidDate       = "invalid_date"
	ReasonDateOrder         = "date_order"
	ReasonInvalidChoice     = "invalid_choice"
	ReasonInvalid           = "invalid"
)

var messages = map[Locale]map[string]string{
	English: {
		ReasonRequired:          "This field is required.",
		ReasonInvalidCharacters: "Contains invalid characters.",
		ReasonTooShort:          "Value is too short.",
		ReasonTooLong:           "Value is too long.",
		ReasonOutOfRange:        "Value is out of the allowed range.",
		ReasonInvalidPrice:      "Price must be a valid number, e.g. 299 or $299.99.",
		ReasonInvalidGroupSize:  "Group size must be a number or range, e.g. 2 or 2-8.",
		ReasonInvalidImageType:  "Only JPEG, PNG, GIF or WebP images are allowed.",
		ReasonImageTooLarge:     "File too large! Please select a file smaller than 2.5 MB.",
		ReasonInvalidImage:      "Image could not be read.",
		ReasonNotContiguous:     "Program steps must be numbered without gaps.",
		ReasonForeignSubDest:    "Sub-destination does not belong to the chosen destination.",
		ReasonInvalidDate:       "Date must be in YYYY-MM-DD format.",
		ReasonDateOrder:         "End date must not be before the start date.",
		ReasonInvalidChoice:     "Value is not one of the allowed choices.",
		ReasonInvalid:           "Value is invalid.",
	},
	Arabic: {
		ReasonRequired:          "هذا الحقل مطلوب.",
		ReasonInvalidCharacters: "يحتوي على أحرف غير مسموح بها.",
		ReasonTooShort:          "القيمة قصيرة جدا.",
		ReasonTooLong:           "القيمة طويلة جدا.",
		ReasonOutOfRange:        "القيمة خارج النطاق المسموح.",
		ReasonInvalidPrice:      "يجب أن يكون السعر رقما صحيحا، مثل 299 أو $299.99.",
		ReasonInvalidGroupSize:  "يجب أن يكون حجم المجموعة رقما أو نطاقا، مثل 2 أو 2-8.",
		ReasonInvalidImageType:  "يسمح فقط بصور JPEG أو PNG أو GIF أو WebP.",
		ReasonImageTooLarge:     "الملف كبير جدا! يرجى اختيار ملف أصغر من 2.5 ميغابايت.",
		ReasonInvalidImage:      "تعذر قراءة الصورة.",
		ReasonNotContiguous:     "يجب ترقيم خطوات البرنامج بدون فجوات.",
		ReasonForeignSubDest:    "الوجهة الفرعية لا تنتمي إلى الوجهة المختارة.",
		ReasonInvalidDate:       "يجب أن يكون التاريخ بصيغة YYYY-MM-DD.",
		ReasonDateOrder:         "يجب ألا يسبق تاريخ الانتهاء تاريخ البدء.",
		ReasonInvalidChoice:     "القيمة ليست من الخيارات المسموح بها.",
		ReasonInvalid:           "القيمة غير صالحة.",
	},
}

// Message returns the user-facing text for a reason, falling back to English.
func Message(l Locale, reason string) string {
	if m, ok := messages[l][reason]; ok {
		return m
	}
	if m, ok := messages[English][reason]; ok {
		return m
	}
	return reason
}
