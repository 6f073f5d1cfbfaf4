package usecase

// MaxUserTurns is the per-session cap on patient messages. Intake is a
// short structured screening, not an open-ended chat.
const MaxUserTurns = 3

// TranscriptWindow is the number of trailing messages fed to triage
// synthesis, bounded to keep the prompt under provider token limits.
const TranscriptWindow = 12

// intakePromptTemplate drives the response generator. It receives the
// retrieved CBT context block and the rendered transcript.
const intakePromptTemplate = `You are 'Freundlier', a professional clinical intake assistant for Dr. Amber.

Look at the CONVERSATION HISTORY to see what the patient has already answered.
Your goal is to move through Dr. Amber's 5 steps.
CRITICAL: Once a patient provides an answer, DO NOT ask the same question again. Acknowledge it briefly and MOVE ON TO THE NEXT STEP.

DR. AMBER'S INTAKE FLOW:
Step 1: Chief Complaint (What brings you here today?)
Step 2: Onset and Duration (When did this start?)
Step 3: Biological Markers (How is sleep/appetite?)
Step 4: Functional Impairment (Is this affecting daily life?)
Step 5: Previous CBT/Therapy (Have you sought help before?)

---
DR. AMBER'S CBT CLINICAL GUIDELINES (Retrieved from Database):
Based on the patient's last message, here is the clinical assessment and CBT approach from our database:
%s

Use this clinical knowledge to inform your tone, gently validate their specific emotion, or frame your next intake question through the lens of the suggested CBT approach.
---

CRITICAL LANGUAGE RULE: Mirror the user's exact language (Urdu script, Roman Urdu, or English). Keep it empathetic but brief (maximum 2 sentences).

CONVERSATION HISTORY:
%s

Write your NEXT response.`

// triagePromptTemplate receives the demographics line and the rendered
// transcript. The two-field output format is parsed by
// model.ParseReportText.
const triagePromptTemplate = `You are a Senior Psychiatrist. Convert this intake transcript into a structured English Clinical Note.
%s
Output EXACTLY in this format:
Risk Level: [Low/Medium/High]
Summary: [Include demographics, then 1-2 concise clinical sentences]
Transcript:
%s`

// triageSystemPrompt is the session-level instruction for every triage
// provider attempt
const triageSystemPrompt = "You are a clinical summarization AI."

// crisisResponse is the canned bilingual emergency reply. It is static on
// purpose: a confirmed crisis must never depend on a model call to reach
// the patient.
const crisisResponse = "⚠️ [URGENT ALERT FROM DR. AMBER]: I have been notified of your message. Please contact the clinic immediately at 042-111-222-333 or call 1122 right now. Your safety is our absolute priority.\n\n⚠️ [ہنگامی الرٹ]: مجھے آپ کے پیغام کے بارے میں مطلع کر دیا گیا ہے۔ براہ کرم فوری طور پر کلینک سے 333-222-111-042 پر رابطہ کریں یا ابھی 1122 پر کال کریں۔ آپ کی حفاظت ہماری اولین ترجیح ہے۔"

// generationFallback is returned when the response model succeeds but
// yields no text
const generationFallback = "I am processing your information for the doctor."

// fallbackReportText is synthesized when every triage provider fails. The
// patient must never be left without a report once a transcript exists.
const fallbackReportText = "Risk Level: Medium\nSummary: System is currently experiencing high load. Preliminary assessment indicates medium risk based on SOS tripwires. Please review chat transcript manually."

// ClinicSchedule is the static clinic availability shown to patients
const ClinicSchedule = `🏥 In-Person Psychology Clinic:
• Monday & Wednesday: 09:00 AM - 01:00 PM
• Friday: 03:00 PM - 07:00 PM

💻 Online Video Consultations:
• Tuesday & Thursday: 04:00 PM - 08:00 PM
• Saturday: 11:00 AM - 02:00 PM

🚨 Urgent Care: Contact clinic directly for priority slots.`
