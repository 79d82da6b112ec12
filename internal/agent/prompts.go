package agent

import "fmt"

// Prompt rendering is deliberately plain: each renderer is a pure function
// from variables to a prompt string, and each node makes at most one
// completion call with the rendered result.

const rewritePromptTemplate = `Dựa trên lịch sử hội thoại dưới đây,
hãy viết lại câu hỏi cuối cùng của người dùng
thành một câu hỏi pháp lý đầy đủ, rõ nghĩa.

Lịch sử:
%s

Câu hỏi mới:
%s

Câu hỏi đầy đủ:
`

func renderRewritePrompt(chatHistory, question string) string {
	return fmt.Sprintf(rewritePromptTemplate, chatHistory, question)
}

const routerPromptTemplate = `Bạn là Router điều hướng câu hỏi pháp lý.
Phân loại câu hỏi vào một trong các nhóm sau:

- "SEARCH_PENAL": Hỏi về mức PHẠT tiền, phạt tù, tội danh, vi phạm GIAO THÔNG, trật tự xã hội.
- "SEARCH_PROCEDURE": Hỏi về THỦ TỤC, hồ sơ, giấy tờ, nơi nộp đơn, quy trình tòa án.
- "SEARCH_CIVIL": Hỏi về ly hôn, quyền nuôi con, đất đai, thừa kế, hợp đồng dân sự.
- "NO_SEARCH": Câu hỏi xã giao (Chào bạn, who are you) hoặc không liên quan luật.

Trả về JSON duy nhất:
{
    "intent": "SEARCH_PENAL" | "SEARCH_PROCEDURE" | "SEARCH_CIVIL" | "NO_SEARCH",
    "limit": <số lượng văn bản (int)>
}

Quy tắc limit:
- SEARCH_PENAL: 3
- SEARCH_PROCEDURE: 5
- SEARCH_CIVIL: 4
- NO_SEARCH: 0

Câu hỏi: %s
`

func renderRouterPrompt(question string) string {
	return fmt.Sprintf(routerPromptTemplate, question)
}

const checkerPromptTemplate = `Bạn là một Thẩm phán cấp cao, cực kỳ kỹ tính. Nhiệm vụ của bạn là đánh giá xem thông tin hiện tại ĐÃ ĐỦ để đưa ra phán quyết (câu trả lời) chính xác cho người dùng hay chưa.

1. CÂU HỎI CỦA NGƯỜI DÙNG: "%s"

2. LỊCH SỬ TRÒ CHUYỆN (Context):
%s

3. VĂN BẢN PHÁP LUẬT TÌM ĐƯỢC:
%s

--- TIÊU CHÍ ĐÁNH GIÁ (QUAN TRỌNG) ---

TRƯỜNG HỢP 1: MISSING_INFO (Thiếu thông tin chi tiết)
- Nếu văn bản luật quy định nhiều khung hình phạt khác nhau dựa trên các yếu tố định lượng (Ví dụ: giá trị tài sản, tỷ lệ thương tật, có tổ chức hay không...).
- VÀ người dùng CHƯA cung cấp các con số/chi tiết đó trong câu hỏi hoặc lịch sử chat.
- Ví dụ: Hỏi "Trộm cắp bị phạt bao nhiêu năm?" -> Luật có khung 6 tháng-3 năm, 2-7 năm, 7-15 năm tùy số tiền -> Người dùng chưa nói số tiền -> MISSING_INFO.

TRƯỜNG HỢP 2: SUFFICIENT (Đủ thông tin)
- Nếu câu hỏi chỉ mang tính định nghĩa, khái niệm (VD: "Thế nào là ly hôn?").
- HOẶC người dùng ĐÃ cung cấp đủ tình tiết khớp với một khoản cụ thể trong luật.
- HOẶC luật chỉ có 1 mức phạt duy nhất không phụ thuộc điều kiện.

TRƯỜNG HỢP 3: NO_LAW (Sai luật/Không liên quan)
- Văn bản tìm được hoàn toàn không liên quan đến câu hỏi.

--- YÊU CẦU ĐẦU RA (JSON) ---
Chỉ trả về JSON duy nhất, không giải thích thêm:
{
    "status": "SUFFICIENT" | "MISSING_INFO" | "NO_LAW",
    "reason": "Giải thích ngắn gọn tại sao"
}
`

func renderCheckerPrompt(question, chatHistory, context string) string {
	return fmt.Sprintf(checkerPromptTemplate, question, chatHistory, context)
}

const writerPromptTemplate = `Bạn là Luật sư AI chuyên nghiệp.

NGUYÊN TẮC:
- Chỉ sử dụng thông tin trong phần "VĂN BẢN PHÁP LÝ" hoặc "Ngữ cảnh luật".
- Không được tạo điều luật mới.
- Không suy đoán ngoài dữ liệu.

VĂN BẢN PHÁP LÝ:
%s

CÂU HỎI:
%s

YÊU CẦU:
- Trả lời có cấu trúc rõ ràng.
- Viện dẫn theo format: "Theo Điều X (Tên Luật)..."
- Không thêm mục nguồn ở cuối.
- Không nhắc đến việc bạn là AI.

CÂU TRẢ LỜI:
`

func renderWriterPrompt(context, question string) string {
	return fmt.Sprintf(writerPromptTemplate, context, question)
}

const clarifyPromptTemplate = `Bạn là Luật sư tư vấn.
Bạn đã tìm thấy luật liên quan nhưng chưa thể áp dụng vì khách hàng cung cấp thiếu thông tin.

Luật liên quan:
%s

Câu hỏi: %s

Nhiệm vụ:
1. Khẳng định vấn đề này có quy định pháp luật.
2. Giải thích ngắn gọn vì sao có nhiều khả năng áp dụng khác nhau.
3. Hỏi lại khách hàng các thông tin cần thiết để tư vấn chính xác hơn, dưới dạng danh sách ngắn.

Phản hồi:`

func renderClarifyPrompt(context, question string) string {
	return fmt.Sprintf(clarifyPromptTemplate, context, question)
}
