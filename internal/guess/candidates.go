package guess

// Candidates are the party list members a guess can be locked under. The
// candidate name is the masking key.
var Candidates = []string{
	"ณัฐพงษ์ เรืองปัญญาวุฒิ",
	"ศิริกัญญา ตันสกุล",
	"วีระยุทธ กาญจน์ชูฉัตร",
	"รศ.ดร.เจษฎ์ โทณะวณิก",
	"เต้ มงคลกิตติ์ สุขสินธารานนท์",
	"ธรรมนัส พรหมเผ่า",
	"ไอซ์ รักชนก ศรีนอก",
	"อนุทิน ชาญวีรกูล",
	"เซีย จำปาทอง",
	"อิสริยะ ไพรีพ่ายฤทธิ์",
	"ณัฐยา บุญภักดี",
	"ภาวุธ พงษ์วิทยภานุ",
	"รังสิมันต์ โรม",
	"พริษฐ์ วัชรสินธุ",
	"สุรเชษฐ์ ประวีณวงศ์วุฒิ",
	"สิทธิพล วิบูลย์ธนากุล",
	"ธีระ สุธีวรางกูร",
	"ปกรณ์วุฒิ อุดมพิพัฒน์สกุล",
	"ณัฐวุฒิ บัวประทุม",
	"กิตติพงษ์ ปิยะวรรณโณ",
	"วาโย อัศวรุ่งเรือง",
	"วิสุทธิ์ ตันตินันท์",
	"ชัยวัฒน์ สถาวรวิจิตร",
	"พูนศักดิ์ จันทร์จำปี",
	"ณัฐชา บุญไชยอินสวัสดิ์",
	"ศุภโชติ ไชยสัจ",
	"ประมวล สุธีจารุวัฒน",
	"เลาฟั้ง บัณฑิตเทอดสกุล",
	"กิตติชัย เตชะกุลวณิชย์",
	"ภคมน หนุนอนันต์",
	"สรศักดิ์ สมรไกรสรกิจ",
	"ปิยรัฐ จงเทพ",
	"รักชนก ศรีนอก",
	"รอมฎอน ปันจอร์",
	"เอกภพ สิทธิวรรณธนะ",
	"ธีรศักดิ์ จิระตราชู",
	"ธนพร วิจันทร์",
	"กรุณพล เทียนสุวรรณ",
	"ณรงเดช อุฬารกุล",
	"ชุติมา คชพันธ์",
	"ทัศนีย์ บูรณุปกรณ์",
	"นพณัฐ มีรักษา",
	"รัชนาท วานิชสมบัติ",
	"นิธิกร บุญยกุลเจริญ",
	"ชลธิชา แจ้งเร็ว",
	"วรวุฒิ บุตรมาตร",
	"ศนิวาร บัวบาน",
	"อำนาจ ชุณหะนันทน์",
	"แทนศร พรปัญญาภัทร",
	"ภูริทัต จันทร์แก้ว",
	"ปารมี ไวจงเจริญ",
	"ธีระชาติ ก่อตระกูล",
	"ฐิติพงศ์ พิมลเวชกุล",
	"ฆนัท นาคถนอมทรัพย์",
	"ธีรวัตร์ ปัญญาณ์ธรรมกุล",
	"ธิวัชร์ ดำแก้ว",
	"จริยา เสนพงศ์",
	"นิธิ ละเอียดดี",
	"พีรัช สงเคราะห์",
	"ธนู แนบเนียร",
	"อรรถพล ศรีชิษณุวรานนท์",
	"วัลลภ ตรีฤกษ์งาม",
	"รักชาติ สุวรรณ์",
	"ปรเมศวร์ ศิริรัตน์",
	"วิชิต เมธาอนันต์กุล",
	"ถนัด ธรรมแก้ว",
	"ฐิติยาภรณ์ ศุภรัตนสิทธิ",
	"วิจักขณ์ฤทธิ์ จิวจินดา",
	"อัศวิน สุทธิวิเชียรโชติ",
	"คณาสิต พ่วงอำไพ",
	"ศุภลักษณ์ บำรุงกิจ",
	"ปรินทร์ จิระภัทรศิลป",
	"ทวีพล ตั้งใจรักการดี",
	"นรชัย อนันต์ศักดากุล",
	"คณิศร ขุริรัง",
	"ไมตรี สมณะ",
	"ธนากร กลิ่นผกา",
	"เบญจมาภรณ์ ศรีละบุตร",
}

func IsCandidate(name string) bool {
	for _, c := range Candidates {
		if c == name {
			return true
		}
	}
	return false
}
