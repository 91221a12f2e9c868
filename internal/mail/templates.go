package mail

import "fmt"

const mailStyle = `
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; text-align: center; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #008CBA; color: #fff; padding: 20px 0; }
        .content { background-color: #ffffff; padding: 20px; }
`

// WelcomeMail renders the subject and HTML body of the mail sent after
// registration.  The activation code it carries is the only copy the
// user ever receives.
func WelcomeMail(email, activationCode string) (subject, body string) {
	subject = "Welcome !"
	body = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Welcome to Our Service</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Welcome to Our Service</h1></div>
        <div class="content">
            <p>Dear %s,</p>
            <p>Thank you for creating an account with us! We are excited to have you on board.</p>
            <p>Here is your activation code : %s</p>
            <p>If you have any questions or need assistance, please don't hesitate to contact our support team.</p>
            <p>Best regards,</p>
            <p>The Webservice Team</p>
        </div>
    </div>
</body>
</html>`, mailStyle, email, activationCode)
	return subject, body
}

// ResetPasswordMail renders the subject and HTML body of the password
// reset mail carrying the raw single-use token.
func ResetPasswordMail(email, token string) (subject, body string) {
	subject = "Password Reset !"
	body = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Password Reset</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Reset Requested</h1></div>
        <div class="content">
            <p>Dear %s,</p>
            <p>Use this token :  %s</p>
            <p>If you did not request a password reset, you can safely ignore this email.</p>
            <p>Best regards,</p>
            <p>The Webservice Team</p>
        </div>
    </div>
</body>
</html>`, mailStyle, email, token)
	return subject, body
}
