package dian

import "fmt"

// pesos para el cálculo del dígito de verificación NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican a los 9 primeros dígitos del NIT, de izquierda a derecha.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// NITBaseLength cantidad de dígitos del NIT sin dígito de verificación.
const NITBaseLength = 9

// CheckNIT revisa que el NIT (con o sin puntos/guiones) tenga al menos 9 dígitos y,
// si trae dígito de verificación (10 dígitos), que éste sea correcto.
// No modifica el valor: el NIT de la planilla se usa tal cual en el nombre del archivo.
func CheckNIT(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) < NITBaseLength {
		return fmt.Errorf("dian: NIT debe tener al menos %d dígitos, se encontraron %d", NITBaseLength, len(digits))
	}
	if len(digits) != NITBaseLength+1 {
		return nil
	}
	expected, err := ComputeNITVerificationDigit(taxID)
	if err != nil {
		return err
	}
	if digits[NITBaseLength] != expected {
		return fmt.Errorf("dian: dígito de verificación del NIT inválido: esperado %c, recibido %c", expected, digits[NITBaseLength])
	}
	return nil
}

// ComputeNITVerificationDigit calcula el dígito de verificación para los 9 primeros dígitos del NIT.
func ComputeNITVerificationDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < NITBaseLength {
		return 0, fmt.Errorf("dian: se requieren al menos %d dígitos para calcular el dígito de verificación, se encontraron %d", NITBaseLength, len(digits))
	}
	var sum int
	for i, d := range digits[:NITBaseLength] {
		sum += int(d-'0') * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
