package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━"

const (
	headerNewNotice      = "📨 <b>طلب جديد</b>"
	headerResolvedNotice = "📨 <b>طلب</b>"
)

// EnglishCodesText is what the notice shows for english codes: the count,
// or "none" when the applicant answered no or gave zero.
func EnglishCodesText(sub *db.Submission) string {
	if !sub.HasEnglishCodes || sub.EnglishCodesCount == 0 {
		return noValue
	}

	return strconv.Itoa(sub.EnglishCodesCount)
}

func submitterHandleText(sub *db.Submission) string {
	if sub.SubmitterHandle == nil {
		return noValue
	}

	return *sub.SubmitterHandle
}

func deviceIDText(sub *db.Submission) string {
	if sub.DeviceID == "" {
		return "غير متوفر"
	}

	return sub.DeviceID
}

// NoticeText renders a submission for the moderation channel. User supplied
// values are HTML escaped; the notice is sent in HTML mode.
func NoticeText(sub *db.Submission, header string) string {
	var b strings.Builder

	b.WriteString(separator + "\n" + header + "\n" + separator + "\n\n")
	fmt.Fprintf(&b, "👤 <b>اسم الطالب:</b> %s\n\n", html.EscapeString(sub.StudentName))
	fmt.Fprintf(&b, "🔢 <b>رقم الطالب:</b> %s\n\n", html.EscapeString(sub.StudentNumber))
	fmt.Fprintf(&b, "📱 <b>معرف التلغرام:</b> %s\n\n", html.EscapeString(sub.TelegramHandle))
	fmt.Fprintf(&b, "📟 <b>معرف الجهاز:</b> <code>%s</code>\n\n", html.EscapeString(deviceIDText(sub)))
	fmt.Fprintf(&b, "📚 <b>المواد المطلوبة:</b> %s\n\n", html.EscapeString(sub.Subjects))
	fmt.Fprintf(&b, "🔑 <b>عدد الأكواد:</b> %d\n\n", sub.CodesCount)
	fmt.Fprintf(&b, "🇬🇧 <b>أكواد الإنجليزي:</b> %s\n\n", EnglishCodesText(sub))
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "👨‍💼 <b>مقدم الطلب:</b> %s\n", html.EscapeString(sub.SubmitterName))
	fmt.Fprintf(&b, "🆔 <b>آيدي مقدم الطلب:</b> <code>%d</code>\n", sub.SubmitterID)
	fmt.Fprintf(&b, "📎 <b>يوزر مقدم الطلب:</b> %s\n\n", html.EscapeString(submitterHandleText(sub)))
	fmt.Fprintf(&b, "📋 <b>ملاحظات:</b> %s\n\n", html.EscapeString(sub.Notes))
	fmt.Fprintf(&b, "🕐 <b>التاريخ والوقت:</b> %s\n", sub.Timestamp)
	b.WriteString(separator)

	return b.String()
}

// ResolutionBanner is appended to the rebuilt notice once a moderator acts.
func ResolutionBanner(outcome db.Status, actor, at string) string {
	title := "✅ <b>تمت الموافقة</b>"
	if outcome == db.StatusRejected {
		title = "❌ <b>تم الرفض</b>"
	}

	return fmt.Sprintf("\n\n%s\n👨‍💼 بواسطة: %s\n🕐 في: %s", title, html.EscapeString(actor), at)
}

func StatisticsText(stats db.Statistics) string {
	return separator + "\n" +
		"📊 <b>إحصائيات النظام</b>\n" +
		separator + "\n\n" +
		fmt.Sprintf("👨‍🎓 عدد الطلاب المقبولين: <b>%d</b>\n\n", stats.AcceptedCount) +
		fmt.Sprintf("🔑 مجموع الأكواد العادية: <b>%d</b>\n\n", stats.TotalCodes) +
		fmt.Sprintf("🇬🇧 مجموع أكواد الإنجليزي: <b>%d</b>\n\n", stats.TotalEnglishCodes) +
		fmt.Sprintf("📦 المجموع الكلي للأكواد: <b>%d</b>\n\n", stats.Total()) +
		separator
}

func statusLabel(status db.Status) string {
	if status == db.StatusAccepted {
		return statusLabelAccepted
	}

	return statusLabelRejected
}

func conflictText(status db.Status) string {
	return fmt.Sprintf("⚠️ هذا الطلب تم معالجته مسبقاً (%s)", statusLabel(status))
}

func acceptedText(sub *db.Submission) string {
	return fmt.Sprintf("✅ تم قبول الطلب بنجاح!\n📊 تم إحصاء %d كود عادي + %d كود إنجليزي",
		sub.CodesCount, sub.EnglishCodesCount)
}
