package ticket

// TrialValue はレコードの体験版フラグの値を返します
func TrialValue(buf []byte, recordStart int) (uint16, error) {
	if !recordFits(buf, recordStart) {
		return 0, ErrTruncatedRecord
	}
	return be.Uint16(buf[recordStart+TrialOffset:]), nil
}

// ClearTrial は体験版フラグをゼロにして製品版扱いにします。
// 書き換えた場合は OutcomePatched、既にゼロなら OutcomeAlreadyCorrect を返します。
func ClearTrial(buf []byte, recordStart int) (Outcome, error) {
	v, err := TrialValue(buf, recordStart)
	if err != nil {
		return OutcomeNone, err
	}
	if v == 0 {
		return OutcomeAlreadyCorrect, nil
	}
	be.PutUint16(buf[recordStart+TrialOffset:], 0)
	return OutcomePatched, nil
}
