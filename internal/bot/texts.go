package bot

const (
	ButtonNewRequest = "📩 إرسال طلب جديد"
	ButtonCancel     = "❌ إلغاء"
	ButtonYes        = "نعم ✅"
	ButtonNo         = "لا ❌"
	ButtonApprove    = "✅ موافقة"
	ButtonReject     = "❌ رفض"
)

const TimestampLayout = "2006-01-02 | 15:04:05"

const (
	unknownSubmitter = "غير معروف"
	unknownModerator = "مشرف"
	noValue          = "لا يوجد"
)

const (
	textCancelled     = "🔙 تم إلغاء العملية.\nيمكنك البدء من جديد."
	textUnrecognized  = "🤔 لم أفهم طلبك.\nاستخدم الأزرار أدناه أو اكتب /start للبدء."
	textAdminOnly     = "⛔ ليس لديك صلاحية لاستخدام هذا الأمر."
	textDigitsOnly    = "⚠️ الرجاء إدخال <b>رقم صحيح</b> فقط:"
	textChooseYesNo   = "⚠️ الرجاء اختيار \"نعم ✅\" أو \"لا ❌\" من الأزرار."
	textSubmitted     = "✅ <b>تم إرسال الطلب بنجاح!</b>\n\n📨 تم إرسال الطلب إلى القناة للمراجعة."
	textSubmitFailed  = "❌ حدث خطأ أثناء إرسال الطلب.\nالرجاء المحاولة لاحقاً."
	textGenericFailed = "❌ حدث خطأ، الرجاء المحاولة لاحقاً."

	textNotFound = "⚠️ لم يتم العثور على هذا الطلب."
	textRejected = "❌ تم رفض الطلب."

	statusLabelAccepted = "مقبول ✅"
	statusLabelRejected = "مرفوض ❌"
)

type prompt struct {
	text     string
	keyboard Keyboard
}

var stepPrompts = map[Step]prompt{
	StepStudentName: {
		text:     "📝 <b>الخطوة 1 من 8</b>\n\n👤 الرجاء إدخال <b>الاسم الثلاثي للطالب</b>:",
		keyboard: KeyboardCancel,
	},
	StepStudentNumber: {
		text:     "📝 <b>الخطوة 2 من 8</b>\n\n🔢 الرجاء إدخال <b>رقم الطالب</b>:",
		keyboard: KeyboardCancel,
	},
	StepTelegramHandle: {
		text:     "📝 <b>الخطوة 3 من 8</b>\n\n📱 الرجاء إدخال <b>معرف التلغرام</b> الخاص بالطالب\n(مثال: @username):",
		keyboard: KeyboardCancel,
	},
	StepDeviceID: {
		text:     "📝 <b>الخطوة 4 من 8</b>\n\n📟 الرجاء إدخال <b>معرف الجهاز (Device ID)</b>:",
		keyboard: KeyboardCancel,
	},
	StepSubjects: {
		text:     "📝 <b>الخطوة 5 من 8</b>\n\n📚 الرجاء إدخال <b>المواد المطلوبة</b>:\n(يمكنك كتابة عدة مواد مفصولة بفاصلة)",
		keyboard: KeyboardCancel,
	},
	StepCodesCount: {
		text:     "📝 <b>الخطوة 6 من 8</b>\n\n🔑 كم <b>عدد الأكواد المطلوبة</b> لهذا الطالب؟\n(أدخل رقماً فقط)",
		keyboard: KeyboardCancel,
	},
	StepHasEnglishCodes: {
		text:     "📝 <b>الخطوة 7 من 8</b>\n\n🇬🇧 هل يوجد <b>أكواد إنجليزي</b>؟",
		keyboard: KeyboardYesNo,
	},
	StepEnglishCodesCount: {
		text:     "🇬🇧 كم <b>عدد أكواد الإنجليزي</b>؟\n(أدخل رقماً فقط)",
		keyboard: KeyboardCancel,
	},
	StepNotes: {
		text:     "📝 <b>الخطوة 8 من 8</b>\n\n📋 أدخل <b>الملاحظات</b>:\n(اختياري – يمكنك كتابة \"لا يوجد\")",
		keyboard: KeyboardCancel,
	},
}
